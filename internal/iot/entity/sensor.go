package entity

import (
	"fmt"
	"time"
)

// SensorStatus is the reporting state of a ward sensor.
type SensorStatus string

const (
	SensorOnline  SensorStatus = "online"
	SensorWarning SensorStatus = "warning"
	SensorOffline SensorStatus = "offline"
)

func ParseSensorStatus(s string) (SensorStatus, error) {
	switch SensorStatus(s) {
	case SensorOnline, SensorWarning, SensorOffline:
		return SensorStatus(s), nil
	}
	return "", fmt.Errorf("unknown sensor status %q", s)
}

// IoTSensor is a ward occupancy/environment sensor, with its latest
// reading denormalized onto the row.
type IoTSensor struct {
	ID               string       `db:"id" json:"id"`
	FaskesID         string       `db:"faskes_id" json:"faskes_id"`
	Location         string       `db:"location" json:"location"`
	OccupancyPercent int          `db:"occupancy_percent" json:"occupancy_percent"`
	Temperature      *float64     `db:"temperature" json:"temperature,omitempty"`
	HumidityPercent  int          `db:"humidity_percent" json:"humidity_percent"`
	Status           SensorStatus `db:"status" json:"status"`
	LastReading      time.Time    `db:"last_reading" json:"last_reading"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`
}
