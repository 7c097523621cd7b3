// Package entity defines the IoT monitoring records attached to a
// facility: medical devices and ward sensors.
package entity

import (
	"fmt"
	"time"
)

// DeviceStatus is the operational state of a medical device.
type DeviceStatus string

const (
	DeviceActive      DeviceStatus = "active"
	DeviceMaintenance DeviceStatus = "maintenance"
	DeviceOffline     DeviceStatus = "offline"
)

func ParseDeviceStatus(s string) (DeviceStatus, error) {
	switch DeviceStatus(s) {
	case DeviceActive, DeviceMaintenance, DeviceOffline:
		return DeviceStatus(s), nil
	}
	return "", fmt.Errorf("unknown device status %q", s)
}

// MedicalDevice is a registered piece of equipment at a facility.
type MedicalDevice struct {
	ID              string       `db:"id" json:"id"`
	FaskesID        string       `db:"faskes_id" json:"faskes_id"`
	Name            string       `db:"name" json:"name"`
	DeviceType      *string      `db:"device_type" json:"device_type,omitempty"`
	Status          DeviceStatus `db:"status" json:"status"`
	UsagePercent    int          `db:"usage_percent" json:"usage_percent"`
	Temperature     *float64     `db:"temperature" json:"temperature,omitempty"`
	LastMaintenance *time.Time   `db:"last_maintenance" json:"last_maintenance,omitempty"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`
}
