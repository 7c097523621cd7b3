// Package audit persists the append-only action trail. Entries are never
// updated or deleted.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Entry is one audit_logs row.
type Entry struct {
	ID         string          `db:"id"`
	UserID     *string         `db:"user_id"`
	Action     string          `db:"action"`
	Resource   *string         `db:"resource"`
	ResourceID *string         `db:"resource_id"`
	Details    json.RawMessage `db:"details"`
	CreatedAt  time.Time       `db:"created_at"`
}

// Recorder is the write-side interface consumed by services.
type Recorder interface {
	Record(ctx context.Context, userID *string, action, resource, resourceID string, details any)
}

// Repo appends audit entries to Postgres. Record is best-effort: failures
// are logged and never surfaced to the caller, so an audit outage can't
// fail a business operation.
type Repo struct {
	db     *sqlx.DB
	logger *zap.SugaredLogger
}

func NewRepo(db *sqlx.DB, logger *zap.SugaredLogger) *Repo {
	return &Repo{db: db, logger: logger}
}

func (r *Repo) Record(ctx context.Context, userID *string, action, resource, resourceID string, details any) {
	var raw json.RawMessage
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			r.logger.Warnw("audit details marshal failed", "action", action, "err", err)
		} else {
			raw = b
		}
	}

	var res, resID *string
	if resource != "" {
		res = &resource
	}
	if resourceID != "" {
		resID = &resourceID
	}

	const q = `INSERT INTO audit_logs (id, user_id, action, resource, resource_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, q, uuid.NewString(), userID, action, res, resID, raw); err != nil {
		r.logger.Warnw("audit record failed", "action", action, "err", err)
	}
}

// ListByUser returns entries for one user, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `SELECT id, user_id, action, resource, resource_id, details, created_at
		FROM audit_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	var out []Entry
	if err := r.db.SelectContext(ctx, &out, q, userID, limit); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Recorder = (*Repo)(nil)
