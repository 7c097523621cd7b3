package credential

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and wrong
	// signing algorithms.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned for structurally valid tokens past exp.
	ErrExpiredToken = errors.New("token expired")
)

// TokenClaims is the payload embedded in access tokens.
type TokenClaims struct {
	Subject string
	Email   string
	Role    string
}

// TokenIssuer issues and verifies HS256-signed access tokens with a
// process-wide shared secret.
type TokenIssuer struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewTokenIssuer(secret string, defaultTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue signs a token embedding subject id, email and role. A zero ttl
// falls back to the issuer default.
func (t *TokenIssuer) Issue(c TokenClaims, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = t.defaultTTL
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   c.Subject,
		"email": c.Email,
		"role":  c.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.secret)
}

// Verify parses and validates a token, returning the embedded claims.
// Expired tokens fail with ErrExpiredToken, everything else with
// ErrInvalidToken.
func (t *TokenIssuer) Verify(token string) (*TokenClaims, error) {
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	out := &TokenClaims{}
	if sub, ok := claims["sub"].(string); ok {
		out.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}
	if out.Subject == "" {
		return nil, ErrInvalidToken
	}
	return out, nil
}
