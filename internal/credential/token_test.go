package credential

import (
	"errors"
	"testing"
	"time"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	tok, err := issuer.Issue(TokenClaims{
		Subject: "user-1",
		Email:   "peserta@email.com",
		Role:    "peserta",
	}, 0)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user-1")
	}
	if claims.Email != "peserta@email.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "peserta@email.com")
	}
	if claims.Role != "peserta" {
		t.Errorf("Role = %q, want %q", claims.Role, "peserta")
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	tok, err := issuer.Issue(TokenClaims{Subject: "user-1"}, -time.Minute)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = issuer.Verify(tok)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify error = %v, want ErrExpiredToken", err)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	tok, err := issuer.Issue(TokenClaims{Subject: "user-1"}, 0)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = other.Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenIssuer_Tampered(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	tok, err := issuer.Issue(TokenClaims{Subject: "user-1"}, 0)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = issuer.Verify(tok + "x")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify error = %v, want ErrInvalidToken", err)
	}

	_, err = issuer.Verify("not.a.jwt")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify error = %v, want ErrInvalidToken", err)
	}
}
