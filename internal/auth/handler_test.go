package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthchain/service-claims-go/internal/credential"
	"github.com/healthchain/service-claims-go/internal/user/entity"
	userrepo "github.com/healthchain/service-claims-go/internal/user/repo"
)

type mockMetrics struct {
	signups []string
	logins  []bool
}

func (m *mockMetrics) RecordSignup(role string) { m.signups = append(m.signups, role) }
func (m *mockMetrics) RecordLogin(success bool) { m.logins = append(m.logins, success) }

func newTestHandler(store UserStore) *Handler {
	issuer := credential.NewTokenIssuer("test-secret", time.Hour)
	svc := NewService(store, credential.BcryptHasher{Cost: bcrypt.MinCost}, issuer, &mockRecorder{}, time.Hour)
	return NewHandler(svc, &mockMetrics{}, zap.NewNop().Sugar())
}

func TestHandler_Signup_Success(t *testing.T) {
	store := &mockUserStore{}
	h := newTestHandler(store)

	body := `{"email":"peserta@email.com","password":"demo123","name":"Ahmad Wijaya","role":"peserta"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Signup(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var profile entity.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if profile.Email != "peserta@email.com" || profile.Role != entity.RolePeserta {
		t.Errorf("profile = %+v", profile)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("response leaks a password field")
	}
}

func TestHandler_Signup_DuplicateEmail(t *testing.T) {
	store := &mockUserStore{
		createFn: func(ctx context.Context, u *entity.User) error {
			return userrepo.ErrDuplicateEmail
		},
	}
	h := newTestHandler(store)

	body := `{"email":"peserta@email.com","password":"demo123","name":"A","role":"peserta"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Signup(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandler_Signup_InvalidRole(t *testing.T) {
	h := newTestHandler(&mockUserStore{})

	body := `{"email":"x@email.com","password":"demo123","name":"X","role":"root"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Signup(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
}

func TestHandler_Signup_MissingFields(t *testing.T) {
	h := newTestHandler(&mockUserStore{})

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":"x@email.com"}`))
	w := httptest.NewRecorder()

	h.Signup(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandler_Login_Success(t *testing.T) {
	u := storedUser(t, "demo123")
	store := &mockUserStore{
		getByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			if email == u.Email {
				return u, nil
			}
			return nil, sql.ErrNoRows
		},
	}
	h := newTestHandler(store)

	body := `{"email":"peserta@email.com","password":"demo123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Errorf("token_type = %q, want bearer", resp.TokenType)
	}
	if resp.AccessToken == "" {
		t.Error("access_token is empty")
	}
	if resp.User.ID != "user-1" {
		t.Errorf("user.id = %q, want user-1", resp.User.ID)
	}
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	h := newTestHandler(&mockUserStore{})

	body := `{"email":"nobody@email.com","password":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
