// Package repo provides sqlx data access for the alerts table.
package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/healthchain/service-claims-go/internal/alert/entity"
)

// AlertRepo provides data access for the alerts table.
type AlertRepo struct {
	db *sqlx.DB
}

func NewAlertRepo(db *sqlx.DB) *AlertRepo { return &AlertRepo{db: db} }

const alertColumns = `id, alert_type, severity, message, claim_id, faskes_id, user_id, read, created_at`

// Create inserts a new alert row.
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	const q = `INSERT INTO alerts (id, alert_type, severity, message, claim_id, faskes_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING read, created_at`
	return r.db.QueryRowxContext(ctx, q,
		a.ID, a.Type, a.Severity, a.Message, a.ClaimID, a.FaskesID, a.UserID,
	).Scan(&a.Read, &a.CreatedAt)
}

// ListAll returns every alert, newest first.
func (r *AlertRepo) ListAll(ctx context.Context) ([]entity.Alert, error) {
	var out []entity.Alert
	const q = `SELECT ` + alertColumns + ` FROM alerts ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns the alerts scoped to one account, newest first.
func (r *AlertRepo) ListByUser(ctx context.Context, userID string) ([]entity.Alert, error) {
	var out []entity.Alert
	const q = `SELECT ` + alertColumns + ` FROM alerts WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, err
	}
	return out, nil
}
