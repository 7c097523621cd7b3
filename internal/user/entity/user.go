package entity

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	// RoleAdminBPJS is the national insurance authority back office.
	RoleAdminBPJS Role = "admin-bpjs"
	// RoleFaskes is a healthcare facility submitting claims.
	RoleFaskes Role = "faskes"
	// RolePeserta is an insured member (patient).
	RolePeserta Role = "peserta"
)

// ParseRole validates a raw role string against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdminBPJS:
		return RoleAdminBPJS, nil
	case RoleFaskes:
		return RoleFaskes, nil
	case RolePeserta:
		return RolePeserta, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// User represents an account row in the `users` table.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Role         Role      `db:"role"`
	PhoneNumber  *string   `db:"phone_number"`
	Address      *string   `db:"address"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Profile is the public projection of a User. It never carries the
// password hash.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile builds the public projection for u.
func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
