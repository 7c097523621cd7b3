package entity

import (
	"fmt"
	"time"
)

// QueueType names one of the patient queues tracked at a facility.
type QueueType string

const (
	QueueRawatJalan  QueueType = "rawatJalan"
	QueueIGD         QueueType = "igd"
	QueuePendaftaran QueueType = "pendaftaran"
)

// KnownQueueTypes lists every queue a facility reports, in display order.
var KnownQueueTypes = []QueueType{QueueRawatJalan, QueueIGD, QueuePendaftaran}

func ParseQueueType(s string) (QueueType, error) {
	switch QueueType(s) {
	case QueueRawatJalan, QueueIGD, QueuePendaftaran:
		return QueueType(s), nil
	}
	return "", fmt.Errorf("unknown queue type %q", s)
}

// QueueCount is one stored queue length for a facility.
type QueueCount struct {
	FaskesID  string    `db:"faskes_id"`
	QueueType QueueType `db:"queue_type"`
	Count     int       `db:"count"`
	UpdatedAt time.Time `db:"updated_at"`
}

// QueueData is the wire snapshot of a facility's queues together with
// its sensor readings.
type QueueData struct {
	FaskesID   string            `json:"faskesId"`
	Queues     map[QueueType]int `json:"queues"`
	Sensors    []IoTSensor       `json:"sensors"`
	LastUpdate time.Time         `json:"lastUpdate"`
}
