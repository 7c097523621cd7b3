// Package auth implements user registration, password login and bearer
// token verification for the API layer.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthchain/service-claims-go/internal/credential"
	"github.com/healthchain/service-claims-go/internal/user/entity"
	userrepo "github.com/healthchain/service-claims-go/internal/user/repo"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidRole    = errors.New("invalid role")
	// ErrInvalidCredentials is deliberately generic: unknown email and
	// wrong password are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore is the persistence surface the service needs.
type UserStore interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
}

// Recorder appends audit entries; failures are swallowed by the impl.
type Recorder interface {
	Record(ctx context.Context, userID *string, action, resource, resourceID string, details any)
}

// Service orchestrates the signup and login flows.
type Service struct {
	store    UserStore
	hasher   credential.PasswordHasher
	tokens   *credential.TokenIssuer
	audit    Recorder
	tokenTTL time.Duration
}

func NewService(store UserStore, hasher credential.PasswordHasher, tokens *credential.TokenIssuer, audit Recorder, tokenTTL time.Duration) *Service {
	if hasher == nil {
		hasher = credential.BcryptHasher{Cost: 12}
	}
	return &Service{store: store, hasher: hasher, tokens: tokens, audit: audit, tokenTTL: tokenTTL}
}

// SignupInput carries the registration request.
type SignupInput struct {
	Email       string
	Password    string
	Name        string
	Role        string
	PhoneNumber *string
	Address     *string
}

// Signup registers a new user. The password is hashed before storage and
// never returned; email uniqueness is enforced by the store.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.Profile, error) {
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, in.Role)
	}

	hash, _, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         role,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, userrepo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("persist user: %w", err)
	}

	s.audit.Record(ctx, &u.ID, "user.signup", "user", u.ID, map[string]any{"role": role})

	p := u.Profile()
	return &p, nil
}

// LoginResult is the successful login payload.
type LoginResult struct {
	AccessToken string
	TokenType   string
	User        entity.Profile
}

// Login authenticates by email and password and issues an access token
// with the configured TTL.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	// Transparent cost upgrade on successful verification.
	if s.hasher.NeedsRehash(u.PasswordHash) {
		if newHash, _, hErr := s.hasher.Hash(password); hErr == nil {
			_ = s.store.UpdatePassword(ctx, u.ID, newHash)
		}
	}

	token, err := s.tokens.Issue(credential.TokenClaims{
		Subject: u.ID,
		Email:   u.Email,
		Role:    string(u.Role),
	}, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.audit.Record(ctx, &u.ID, "user.login", "user", u.ID, nil)

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		User:        u.Profile(),
	}, nil
}
