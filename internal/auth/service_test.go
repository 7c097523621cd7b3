package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/healthchain/service-claims-go/internal/credential"
	"github.com/healthchain/service-claims-go/internal/user/entity"
	userrepo "github.com/healthchain/service-claims-go/internal/user/repo"
)

// --- mocks ---

type mockUserStore struct {
	createFn     func(ctx context.Context, u *entity.User) error
	getByEmailFn func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserStore) Create(ctx context.Context, u *entity.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	return nil
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, sql.ErrNoRows
}
func (m *mockUserStore) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return nil, sql.ErrNoRows
}
func (m *mockUserStore) UpdatePassword(ctx context.Context, id, hash string) error {
	return nil
}

type mockRecorder struct {
	actions []string
}

func (m *mockRecorder) Record(ctx context.Context, userID *string, action, resource, resourceID string, details any) {
	m.actions = append(m.actions, action)
}

func newTestService(store UserStore) (*Service, *mockRecorder) {
	rec := &mockRecorder{}
	issuer := credential.NewTokenIssuer("test-secret", time.Hour)
	svc := NewService(store, credential.BcryptHasher{Cost: bcrypt.MinCost}, issuer, rec, time.Hour)
	return svc, rec
}

// --- signup ---

func TestService_Signup_HashesPassword(t *testing.T) {
	var stored *entity.User
	store := &mockUserStore{
		createFn: func(ctx context.Context, u *entity.User) error {
			stored = u
			return nil
		},
	}
	svc, rec := newTestService(store)

	profile, err := svc.Signup(context.Background(), SignupInput{
		Email:    "peserta@email.com",
		Password: "demo123",
		Name:     "Ahmad Wijaya",
		Role:     "peserta",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	if stored == nil {
		t.Fatal("expected Create to be called")
	}
	if stored.PasswordHash == "demo123" {
		t.Error("password stored in plaintext")
	}
	if !(credential.BcryptHasher{}).Verify(stored.PasswordHash, "demo123") {
		t.Error("stored hash does not verify against the password")
	}
	if profile.Email != "peserta@email.com" || profile.Role != entity.RolePeserta {
		t.Errorf("profile = %+v", profile)
	}
	if len(rec.actions) != 1 || rec.actions[0] != "user.signup" {
		t.Errorf("audit actions = %v, want [user.signup]", rec.actions)
	}
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	store := &mockUserStore{
		createFn: func(ctx context.Context, u *entity.User) error {
			return userrepo.ErrDuplicateEmail
		},
	}
	svc, _ := newTestService(store)

	_, err := svc.Signup(context.Background(), SignupInput{
		Email:    "peserta@email.com",
		Password: "demo123",
		Name:     "Ahmad Wijaya",
		Role:     "peserta",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("error = %v, want ErrDuplicateEmail", err)
	}
}

func TestService_Signup_InvalidRole(t *testing.T) {
	createCalled := false
	store := &mockUserStore{
		createFn: func(ctx context.Context, u *entity.User) error {
			createCalled = true
			return nil
		},
	}
	svc, _ := newTestService(store)

	_, err := svc.Signup(context.Background(), SignupInput{
		Email:    "x@email.com",
		Password: "demo123",
		Name:     "X",
		Role:     "superuser",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("error = %v, want ErrInvalidRole", err)
	}
	if createCalled {
		t.Error("Create must not be called for an invalid role")
	}
}

// --- login ---

func storedUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, _, err := (credential.BcryptHasher{Cost: bcrypt.MinCost}).Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &entity.User{
		ID:           "user-1",
		Email:        "peserta@email.com",
		PasswordHash: hash,
		Name:         "Ahmad Wijaya",
		Role:         entity.RolePeserta,
	}
}

func TestService_Login_Success(t *testing.T) {
	u := storedUser(t, "demo123")
	store := &mockUserStore{
		getByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			if email != u.Email {
				return nil, sql.ErrNoRows
			}
			return u, nil
		},
	}
	svc, rec := newTestService(store)

	result, err := svc.Login(context.Background(), "peserta@email.com", "demo123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.TokenType != "bearer" {
		t.Errorf("TokenType = %q, want bearer", result.TokenType)
	}
	if result.User.ID != "user-1" {
		t.Errorf("User.ID = %q, want user-1", result.User.ID)
	}

	// the issued token must verify and carry the subject
	issuer := credential.NewTokenIssuer("test-secret", time.Hour)
	claims, err := issuer.Verify(result.AccessToken)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("token subject = %q, want user-1", claims.Subject)
	}
	if claims.Role != "peserta" {
		t.Errorf("token role = %q, want peserta", claims.Role)
	}
	if len(rec.actions) != 1 || rec.actions[0] != "user.login" {
		t.Errorf("audit actions = %v, want [user.login]", rec.actions)
	}
}

func TestService_Login_GenericFailure(t *testing.T) {
	u := storedUser(t, "demo123")
	store := &mockUserStore{
		getByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			if email == u.Email {
				return u, nil
			}
			return nil, sql.ErrNoRows
		},
	}
	svc, _ := newTestService(store)

	// wrong password and unknown email must be indistinguishable
	_, errWrongPw := svc.Login(context.Background(), "peserta@email.com", "wrong")
	_, errNoUser := svc.Login(context.Background(), "nobody@email.com", "demo123")

	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", errWrongPw)
	}
	if !errors.Is(errNoUser, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", errNoUser)
	}
	if errWrongPw.Error() != errNoUser.Error() {
		t.Errorf("error messages differ: %q vs %q", errWrongPw, errNoUser)
	}
}
