package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/healthchain/service-claims-go/internal/credential"
	"github.com/healthchain/service-claims-go/internal/user/entity"
)

func protectedEcho(t *testing.T) (http.Handler, *credential.TokenIssuer) {
	t.Helper()
	issuer := credential.NewTokenIssuer("test-secret", time.Hour)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			t.Error("caller missing from context inside protected handler")
		}
		if caller.Role != entity.RolePeserta {
			t.Errorf("caller role = %q, want peserta", caller.Role)
		}
		w.WriteHeader(http.StatusOK)
	})
	return RequireToken(issuer)(inner), issuer
}

func TestRequireToken_ValidToken(t *testing.T) {
	h, issuer := protectedEcho(t)

	tok, err := issuer.Issue(credential.TokenClaims{Subject: "user-1", Role: "peserta"}, 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/claims", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRequireToken_MissingHeader(t *testing.T) {
	h, _ := protectedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/claims", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireToken_InvalidToken(t *testing.T) {
	h, _ := protectedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/claims", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireToken_ExpiredToken(t *testing.T) {
	h, issuer := protectedEcho(t)

	tok, err := issuer.Issue(credential.TokenClaims{Subject: "user-1", Role: "peserta"}, -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/claims", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
