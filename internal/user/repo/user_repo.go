package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/healthchain/service-claims-go/internal/user/entity"
)

// ErrDuplicateEmail is returned when an insert hits the unique index on
// users.email.
var ErrDuplicateEmail = errors.New("email already registered")

// uniqueViolation is the Postgres error code for unique constraint hits.
const uniqueViolation = "23505"

// UserRepo provides data access for the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row. The unique index on email is the only
// duplicate guard; concurrent signups race on it and exactly one wins.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const q = `INSERT INTO users (id, email, password_hash, name, role, phone_number, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.PhoneNumber, u.Address,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByEmail returns the user with the exact stored email or sql.ErrNoRows.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT id, email, password_hash, name, role, phone_number, address, created_at, updated_at
		FROM users WHERE email = $1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, email); err != nil {
		return nil, err
	}
	return &row, nil
}

// GetByID fetches a full user row.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	const q = `SELECT id, email, password_hash, name, role, phone_number, address, created_at, updated_at
		FROM users WHERE id = $1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdatePassword replaces the stored hash, used for cost upgrades on login.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	const q = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, hash)
	return err
}
