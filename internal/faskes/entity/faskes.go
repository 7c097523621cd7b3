package entity

import "time"

// Faskes is a healthcare facility (hospital/clinic) that submits claims
// and hosts monitored devices and sensors.
type Faskes struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Location    *string   `db:"location" json:"location,omitempty"`
	FaskesType  string    `db:"faskes_type" json:"faskes_type"`
	DeviceCount int       `db:"device_count" json:"device_count"`
	ActiveBeds  int       `db:"active_beds" json:"active_beds"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
