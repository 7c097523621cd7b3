package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/healthchain/service-claims-go/internal/faskes/entity"
)

// FaskesRepo provides data access for the faskes table using sqlx.
type FaskesRepo struct {
	db *sqlx.DB
}

func NewFaskesRepo(db *sqlx.DB) *FaskesRepo { return &FaskesRepo{db: db} }

const faskesColumns = `id, name, location, faskes_type, device_count, active_beds, created_at, updated_at`

// Create inserts a new facility row.
func (r *FaskesRepo) Create(ctx context.Context, f *entity.Faskes) error {
	const q = `INSERT INTO faskes (id, name, location, faskes_type, device_count, active_beds)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`
	return r.db.QueryRowxContext(ctx, q,
		f.ID, f.Name, f.Location, f.FaskesType, f.DeviceCount, f.ActiveBeds,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
}

// GetByID fetches one facility or sql.ErrNoRows.
func (r *FaskesRepo) GetByID(ctx context.Context, id string) (*entity.Faskes, error) {
	var row entity.Faskes
	if err := r.db.GetContext(ctx, &row, `SELECT `+faskesColumns+` FROM faskes WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// First returns the oldest registered facility or sql.ErrNoRows when the
// table is empty. Used as the demo fallback when a claim arrives without
// an explicit facility.
func (r *FaskesRepo) First(ctx context.Context) (*entity.Faskes, error) {
	var row entity.Faskes
	if err := r.db.GetContext(ctx, &row, `SELECT `+faskesColumns+` FROM faskes ORDER BY created_at ASC LIMIT 1`); err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns all facilities ordered by name.
func (r *FaskesRepo) List(ctx context.Context) ([]entity.Faskes, error) {
	var out []entity.Faskes
	if err := r.db.SelectContext(ctx, &out, `SELECT `+faskesColumns+` FROM faskes ORDER BY name ASC`); err != nil {
		return nil, err
	}
	return out, nil
}
