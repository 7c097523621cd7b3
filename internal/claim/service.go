// Package claim implements the claim lifecycle: creation with mocked
// scoring, retrieval, and reviewer status transitions.
package claim

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthchain/service-claims-go/internal/claim/entity"
	faskesentity "github.com/healthchain/service-claims-go/internal/faskes/entity"
	userentity "github.com/healthchain/service-claims-go/internal/user/entity"
)

var (
	ErrNoFaskesAvailable = errors.New("no faskes found")
	ErrInvalidAmount     = errors.New("amount must be a non-negative number")
	ErrClaimNotFound     = errors.New("claim not found")
	ErrInvalidStatus     = errors.New("invalid claim status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, c *entity.Claim) error
	GetByID(ctx context.Context, id string) (*entity.Claim, error)
	List(ctx context.Context) ([]entity.Claim, error)
	ListByPatient(ctx context.Context, userID string) ([]entity.Claim, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.Status, notes *string) (int64, error)
}

// FaskesFinder resolves the facility a claim attaches to.
type FaskesFinder interface {
	First(ctx context.Context) (*faskesentity.Faskes, error)
	GetByID(ctx context.Context, id string) (*faskesentity.Faskes, error)
}

// Scorer produces the AI validation and fraud risk scores for a new
// claim. The production wiring is the deterministic mock.
type Scorer interface {
	ScoreClaim(serviceType, diagnosis string, amount float64) (aiScore, fraudScore int, verdict json.RawMessage)
}

// Recorder appends audit entries; failures are swallowed by the impl.
type Recorder interface {
	Record(ctx context.Context, userID *string, action, resource, resourceID string, details any)
}

// Alerter receives fraud notifications for flagged claims. Implementations
// must not fail the claim operation that raised the flag.
type Alerter interface {
	FraudDetected(ctx context.Context, claimNumber, faskesID string, fraudScore int)
}

// FraudAlertThreshold is the fraud risk score at or above which a new
// claim raises a fraud alert.
const FraudAlertThreshold = 80

// Service orchestrates claim operations.
type Service struct {
	store   Store
	faskes  FaskesFinder
	scorer  Scorer
	numbers *NumberGenerator
	audit   Recorder
	alerts  Alerter
}

func NewService(store Store, faskes FaskesFinder, scorer Scorer, numbers *NumberGenerator, audit Recorder, alerts Alerter) *Service {
	return &Service{store: store, faskes: faskes, scorer: scorer, numbers: numbers, audit: audit, alerts: alerts}
}

// Caller identifies the authenticated subject a request runs as.
type Caller struct {
	UserID string
	Role   userentity.Role
}

// CreateInput carries the claim creation request.
type CreateInput struct {
	PatientName string
	ServiceType string
	Diagnosis   string
	Amount      float64
	Documents   []string
	// FaskesID, when set, attaches the claim to that facility. When empty
	// the first registered facility is used (demo fallback).
	FaskesID string
}

// Create validates the input, resolves the facility, attaches mocked
// scores and persists the claim in the processing state.
func (s *Service) Create(ctx context.Context, caller Caller, in CreateInput) (*entity.Claim, error) {
	if in.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	var fk *faskesentity.Faskes
	var err error
	if in.FaskesID != "" {
		fk, err = s.faskes.GetByID(ctx, in.FaskesID)
	} else {
		fk, err = s.faskes.First(ctx)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoFaskesAvailable
		}
		return nil, fmt.Errorf("resolve faskes: %w", err)
	}

	aiScore, fraudScore, verdict := s.scorer.ScoreClaim(in.ServiceType, in.Diagnosis, in.Amount)

	docs := in.Documents
	if docs == nil {
		docs = []string{}
	}
	docsJSON, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}

	// The patient reference comes from the caller's token, not the body:
	// only an insured member is recorded as the claim's patient.
	var patientID *string
	if caller.Role == userentity.RolePeserta && caller.UserID != "" {
		id := caller.UserID
		patientID = &id
	}

	amount := in.Amount
	diagnosis := in.Diagnosis
	c := &entity.Claim{
		ID:                uuid.NewString(),
		ClaimNumber:       s.numbers.Next(),
		PatientID:         patientID,
		FaskesID:          fk.ID,
		ServiceType:       in.ServiceType,
		Diagnosis:         &diagnosis,
		Amount:            &amount,
		Status:            entity.StatusProcessing,
		AIValidationScore: &aiScore,
		FraudRiskScore:    &fraudScore,
		ValidationData:    verdict,
		Documents:         docsJSON,
	}

	if err := s.store.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("persist claim: %w", err)
	}

	s.audit.Record(ctx, callerID(caller), "claim.create", "claim", c.ID, map[string]any{
		"claim_number": c.ClaimNumber,
		"faskes_id":    c.FaskesID,
		"patient_name": in.PatientName,
		"amount":       in.Amount,
	})

	if fraudScore >= FraudAlertThreshold {
		s.alerts.FraudDetected(ctx, c.ClaimNumber, c.FaskesID, fraudScore)
	}

	return c, nil
}

// Get fetches one claim by id.
func (s *Service) Get(ctx context.Context, id string) (*entity.Claim, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns every claim, newest first.
func (s *Service) List(ctx context.Context) ([]entity.Claim, error) {
	return s.store.List(ctx)
}

// ListByPatient returns the claims recorded against one user.
func (s *Service) ListByPatient(ctx context.Context, userID string) ([]entity.Claim, error) {
	return s.store.ListByPatient(ctx, userID)
}

// UpdateStatus applies a reviewer decision. Transitions out of terminal
// states are rejected. The store update is guarded on the status the
// decision was made against, so a concurrent transition cannot be
// overwritten: if the row moved in between, the update matches nothing
// and the request fails instead of flipping a settled claim.
func (s *Service) UpdateStatus(ctx context.Context, caller Caller, id string, rawStatus string, notes string) (*entity.Claim, error) {
	next, err := entity.ParseStatus(rawStatus)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}
	rows, err := s.store.UpdateStatus(ctx, id, current.Status, next, notesPtr)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if rows == 0 {
		// Either the claim vanished or its status changed underneath us.
		latest, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: claim moved to %s concurrently", ErrInvalidTransition, latest.Status)
	}

	s.audit.Record(ctx, callerID(caller), "claim.status", "claim", id, map[string]any{
		"from": current.Status,
		"to":   next,
	})

	return s.Get(ctx, id)
}

func callerID(c Caller) *string {
	if c.UserID == "" {
		return nil
	}
	id := c.UserID
	return &id
}
