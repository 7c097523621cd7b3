package entity

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{"admin-bpjs", RoleAdminBPJS, false},
		{"faskes", RoleFaskes, false},
		{"peserta", RolePeserta, false},
		{"admin", "", true},
		{"", "", true},
		{"PESERTA", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q) = %v, want error", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q) returned error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRole(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestUserProfileOmitsHash(t *testing.T) {
	u := &User{
		ID:           "u-1",
		Email:        "peserta@email.com",
		PasswordHash: "$2b$12$secret",
		Name:         "Ahmad Wijaya",
		Role:         RolePeserta,
	}

	p := u.Profile()
	if p.ID != u.ID || p.Email != u.Email || p.Name != u.Name || p.Role != u.Role {
		t.Errorf("Profile() = %+v, want projection of %+v", p, u)
	}
}
