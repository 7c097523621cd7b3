package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the closed set of claim lifecycle states.
type Status string

const (
	// StatusProcessing is the initial state of every claim.
	StatusProcessing Status = "processing"
	// StatusPendingReview means a reviewer has pulled the claim aside.
	StatusPendingReview Status = "pending_review"
	// StatusApproved is terminal.
	StatusApproved Status = "approved"
	// StatusRejected is terminal.
	StatusRejected Status = "rejected"
)

// ParseStatus validates a raw status string against the closed set.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusProcessing:
		return StatusProcessing, nil
	case StatusPendingReview:
		return StatusPendingReview, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("unknown claim status %q", raw)
	}
}

// Terminal reports whether s allows no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected:
		return true
	case StatusProcessing, StatusPendingReview:
		return false
	}
	return false
}

// CanTransitionTo reports whether a reviewer may move a claim from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusProcessing:
		return next == StatusApproved || next == StatusRejected || next == StatusPendingReview
	case StatusPendingReview:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved, StatusRejected:
		return false
	}
	return false
}

// Claim is a reimbursement request tied to a facility and, optionally,
// a patient.
type Claim struct {
	ID                string          `db:"id" json:"id"`
	ClaimNumber       string          `db:"claim_number" json:"claim_number"`
	PatientID         *string         `db:"patient_id" json:"patient_id,omitempty"`
	FaskesID          string          `db:"faskes_id" json:"faskes_id"`
	ServiceType       string          `db:"service_type" json:"service_type"`
	Diagnosis         *string         `db:"diagnosis" json:"diagnosis,omitempty"`
	Amount            *float64        `db:"amount" json:"amount,omitempty"`
	Status            Status          `db:"status" json:"status"`
	AIValidationScore *int            `db:"ai_validation_score" json:"ai_validation_score,omitempty"`
	FraudRiskScore    *int            `db:"fraud_risk_score" json:"fraud_risk_score,omitempty"`
	ValidationData    json.RawMessage `db:"validation_data" json:"validation_data,omitempty"`
	Documents         json.RawMessage `db:"documents" json:"documents"`
	Notes             *string         `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}
