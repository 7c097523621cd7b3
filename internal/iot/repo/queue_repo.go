package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/healthchain/service-claims-go/internal/iot/entity"
)

// QueueRepo provides data access for the faskes_queues table.
type QueueRepo struct {
	db *sqlx.DB
}

func NewQueueRepo(db *sqlx.DB) *QueueRepo { return &QueueRepo{db: db} }

// Upsert sets the length of one queue at a facility.
func (r *QueueRepo) Upsert(ctx context.Context, faskesID string, queueType entity.QueueType, count int) error {
	const q = `INSERT INTO faskes_queues (faskes_id, queue_type, count)
		VALUES ($1, $2, $3)
		ON CONFLICT (faskes_id, queue_type)
		DO UPDATE SET count = EXCLUDED.count, updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, q, faskesID, queueType, count)
	return err
}

// ListByFaskes returns the stored queue lengths for one facility.
func (r *QueueRepo) ListByFaskes(ctx context.Context, faskesID string) ([]entity.QueueCount, error) {
	var out []entity.QueueCount
	const q = `SELECT faskes_id, queue_type, count, updated_at
		FROM faskes_queues WHERE faskes_id = $1 ORDER BY queue_type ASC`
	if err := r.db.SelectContext(ctx, &out, q, faskesID); err != nil {
		return nil, err
	}
	return out, nil
}
