// Package seed loads the demo dataset: three accounts, one facility,
// and its monitoring fixtures. Running it twice is safe.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthchain/service-claims-go/internal/credential"
	faskesentity "github.com/healthchain/service-claims-go/internal/faskes/entity"
	faskesrepo "github.com/healthchain/service-claims-go/internal/faskes/repo"
	iotentity "github.com/healthchain/service-claims-go/internal/iot/entity"
	iotrepo "github.com/healthchain/service-claims-go/internal/iot/repo"
	userentity "github.com/healthchain/service-claims-go/internal/user/entity"
	userrepo "github.com/healthchain/service-claims-go/internal/user/repo"
)

// Seeder writes the demo fixtures through the regular repositories so
// the same constraints apply as in normal operation.
type Seeder struct {
	users   *userrepo.UserRepo
	faskes  *faskesrepo.FaskesRepo
	devices *iotrepo.DeviceRepo
	sensors *iotrepo.SensorRepo
	queues  *iotrepo.QueueRepo
	hasher  credential.PasswordHasher
	logger  *zap.SugaredLogger
}

func New(users *userrepo.UserRepo, faskes *faskesrepo.FaskesRepo, devices *iotrepo.DeviceRepo, sensors *iotrepo.SensorRepo, queues *iotrepo.QueueRepo, hasher credential.PasswordHasher, logger *zap.SugaredLogger) *Seeder {
	return &Seeder{users: users, faskes: faskes, devices: devices, sensors: sensors, queues: queues, hasher: hasher, logger: logger}
}

type demoUser struct {
	email    string
	password string
	name     string
	role     userentity.Role
}

var demoUsers = []demoUser{
	{"admin@bpjs.go.id", "demo123", "Admin BPJS", userentity.RoleAdminBPJS},
	{"admin@rscipto.id", "demo123", "Admin RS Cipto", userentity.RoleFaskes},
	{"peserta@email.com", "demo123", "Ahmad Wijaya", userentity.RolePeserta},
}

// Run inserts the demo users, the demo facility and its devices and
// sensors. Rows that already exist are left alone.
func (s *Seeder) Run(ctx context.Context) error {
	for _, du := range demoUsers {
		if err := s.seedUser(ctx, du); err != nil {
			return err
		}
	}

	fk, err := s.seedFaskes(ctx)
	if err != nil {
		return err
	}
	if fk == nil {
		// facility fixtures already present
		return nil
	}

	if err := s.seedMonitoring(ctx, fk.ID); err != nil {
		return err
	}

	s.logger.Infow("demo data seeded", "faskes_id", fk.ID)
	return nil
}

func (s *Seeder) seedUser(ctx context.Context, du demoUser) error {
	if _, err := s.users.GetByEmail(ctx, du.email); err == nil {
		s.logger.Debugw("demo user exists", "email", du.email)
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check demo user %s: %w", du.email, err)
	}

	hash, _, err := s.hasher.Hash(du.password)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	u := &userentity.User{
		ID:           uuid.NewString(),
		Email:        du.email,
		PasswordHash: hash,
		Name:         du.name,
		Role:         du.role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, userrepo.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("seed user %s: %w", du.email, err)
	}
	s.logger.Infow("demo user created", "email", du.email, "role", du.role)
	return nil
}

// seedFaskes returns nil when a facility already exists.
func (s *Seeder) seedFaskes(ctx context.Context) (*faskesentity.Faskes, error) {
	if _, err := s.faskes.First(ctx); err == nil {
		s.logger.Debugw("faskes fixtures exist")
		return nil, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check faskes: %w", err)
	}

	location := "Jakarta Pusat"
	fk := &faskesentity.Faskes{
		ID:          uuid.NewString(),
		Name:        "RS. Cipto Mangunkusumo",
		Location:    &location,
		FaskesType:  "hospital",
		DeviceCount: 3,
		ActiveBeds:  120,
	}
	if err := s.faskes.Create(ctx, fk); err != nil {
		return nil, fmt.Errorf("seed faskes: %w", err)
	}
	return fk, nil
}

func (s *Seeder) seedMonitoring(ctx context.Context, faskesID string) error {
	mri := "imaging"
	vent := "life-support"
	usg := "imaging"
	temp := 21.5
	devices := []iotentity.MedicalDevice{
		{ID: uuid.NewString(), FaskesID: faskesID, Name: "MRI Scanner", DeviceType: &mri, Status: iotentity.DeviceActive, UsagePercent: 72, Temperature: &temp},
		{ID: uuid.NewString(), FaskesID: faskesID, Name: "Ventilator A-3", DeviceType: &vent, Status: iotentity.DeviceActive, UsagePercent: 45},
		{ID: uuid.NewString(), FaskesID: faskesID, Name: "USG Unit 2", DeviceType: &usg, Status: iotentity.DeviceMaintenance, UsagePercent: 0},
	}
	for i := range devices {
		if err := s.devices.Create(ctx, &devices[i]); err != nil {
			return fmt.Errorf("seed device %s: %w", devices[i].Name, err)
		}
	}

	icuTemp := 22.0
	wardTemp := 24.5
	sensors := []iotentity.IoTSensor{
		{ID: uuid.NewString(), FaskesID: faskesID, Location: "ICU", OccupancyPercent: 80, Temperature: &icuTemp, HumidityPercent: 55, Status: iotentity.SensorOnline},
		{ID: uuid.NewString(), FaskesID: faskesID, Location: "Rawat Inap Lt. 3", OccupancyPercent: 64, Temperature: &wardTemp, HumidityPercent: 60, Status: iotentity.SensorOnline},
		{ID: uuid.NewString(), FaskesID: faskesID, Location: "IGD", OccupancyPercent: 91, HumidityPercent: 58, Status: iotentity.SensorWarning},
	}
	for i := range sensors {
		if err := s.sensors.Create(ctx, &sensors[i]); err != nil {
			return fmt.Errorf("seed sensor %s: %w", sensors[i].Location, err)
		}
	}

	queues := map[iotentity.QueueType]int{
		iotentity.QueueRawatJalan:  23,
		iotentity.QueueIGD:         6,
		iotentity.QueuePendaftaran: 11,
	}
	for queueType, count := range queues {
		if err := s.queues.Upsert(ctx, faskesID, queueType, count); err != nil {
			return fmt.Errorf("seed queue %s: %w", queueType, err)
		}
	}

	return nil
}
