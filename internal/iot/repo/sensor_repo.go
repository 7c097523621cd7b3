package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/healthchain/service-claims-go/internal/iot/entity"
)

// SensorRepo provides data access for the iot_sensors table.
type SensorRepo struct {
	db *sqlx.DB
}

func NewSensorRepo(db *sqlx.DB) *SensorRepo { return &SensorRepo{db: db} }

const sensorColumns = `id, faskes_id, location, occupancy_percent, temperature, humidity_percent, status, last_reading, updated_at`

// Create inserts a new sensor row.
func (r *SensorRepo) Create(ctx context.Context, s *entity.IoTSensor) error {
	const q = `INSERT INTO iot_sensors (id, faskes_id, location, occupancy_percent, temperature, humidity_percent, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING last_reading, updated_at`
	return r.db.QueryRowxContext(ctx, q,
		s.ID, s.FaskesID, s.Location, s.OccupancyPercent, s.Temperature, s.HumidityPercent, s.Status,
	).Scan(&s.LastReading, &s.UpdatedAt)
}

// ListByFaskes returns the sensors reporting for one facility, narrowed
// to one reporting status when the filter is non-nil.
func (r *SensorRepo) ListByFaskes(ctx context.Context, faskesID string, status *entity.SensorStatus) ([]entity.IoTSensor, error) {
	var out []entity.IoTSensor
	if status != nil {
		err := r.db.SelectContext(ctx, &out,
			`SELECT `+sensorColumns+` FROM iot_sensors WHERE faskes_id = $1 AND status = $2 ORDER BY location ASC`,
			faskesID, *status)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+sensorColumns+` FROM iot_sensors WHERE faskes_id = $1 ORDER BY location ASC`, faskesID)
	if err != nil {
		return nil, err
	}
	return out, nil
}
