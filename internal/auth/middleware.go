package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/healthchain/service-claims-go/internal/credential"
	"github.com/healthchain/service-claims-go/internal/user/entity"
)

type contextKey string

const callerKey contextKey = "auth.caller"

// CallerIdentity is the verified subject injected into request contexts.
type CallerIdentity struct {
	UserID string
	Email  string
	Role   entity.Role
}

// CallerFromContext extracts the verified caller, if any.
func CallerFromContext(ctx context.Context) (CallerIdentity, bool) {
	c, ok := ctx.Value(callerKey).(CallerIdentity)
	return c, ok
}

// WithCaller returns a context carrying the given caller. Exported for
// handler tests.
func WithCaller(ctx context.Context, c CallerIdentity) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

// RequireToken verifies the Authorization bearer token and injects the
// caller identity. Expired and invalid tokens both yield 401 with the
// matching sentinel message.
func RequireToken(tokens *credential.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				unauthorized(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(header[len("bearer "):])

			claims, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, credential.ErrExpiredToken) {
					unauthorized(w, "token expired")
					return
				}
				unauthorized(w, "invalid token")
				return
			}

			role, err := entity.ParseRole(claims.Role)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := WithCaller(r.Context(), CallerIdentity{
				UserID: claims.Subject,
				Email:  claims.Email,
				Role:   role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": detail})
}
