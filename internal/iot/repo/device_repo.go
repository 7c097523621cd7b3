// Package repo provides sqlx data access for the IoT monitoring tables.
package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/healthchain/service-claims-go/internal/iot/entity"
)

// DeviceRepo provides data access for the medical_devices table.
type DeviceRepo struct {
	db *sqlx.DB
}

func NewDeviceRepo(db *sqlx.DB) *DeviceRepo { return &DeviceRepo{db: db} }

const deviceColumns = `id, faskes_id, name, device_type, status, usage_percent, temperature, last_maintenance, created_at, updated_at`

// Create inserts a new device row.
func (r *DeviceRepo) Create(ctx context.Context, d *entity.MedicalDevice) error {
	const q = `INSERT INTO medical_devices (id, faskes_id, name, device_type, status, usage_percent, temperature, last_maintenance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	return r.db.QueryRowxContext(ctx, q,
		d.ID, d.FaskesID, d.Name, d.DeviceType, d.Status, d.UsagePercent, d.Temperature, d.LastMaintenance,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

// ListByFaskes returns the devices registered at one facility, narrowed
// to one operational status when the filter is non-nil.
func (r *DeviceRepo) ListByFaskes(ctx context.Context, faskesID string, status *entity.DeviceStatus) ([]entity.MedicalDevice, error) {
	var out []entity.MedicalDevice
	if status != nil {
		err := r.db.SelectContext(ctx, &out,
			`SELECT `+deviceColumns+` FROM medical_devices WHERE faskes_id = $1 AND status = $2 ORDER BY name ASC`,
			faskesID, *status)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+deviceColumns+` FROM medical_devices WHERE faskes_id = $1 ORDER BY name ASC`, faskesID)
	if err != nil {
		return nil, err
	}
	return out, nil
}
