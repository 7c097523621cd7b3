package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/healthchain/service-claims-go/internal/claim/entity"
)

// ClaimRepo provides data access for the claims table using sqlx.
type ClaimRepo struct {
	db *sqlx.DB
}

func NewClaimRepo(db *sqlx.DB) *ClaimRepo { return &ClaimRepo{db: db} }

const claimColumns = `id, claim_number, patient_id, faskes_id, service_type, diagnosis, amount,
	status, ai_validation_score, fraud_risk_score, validation_data, documents, notes,
	created_at, updated_at`

// Create inserts a new claim row. The unique index on claim_number backs
// the generator's uniqueness guarantee across processes.
func (r *ClaimRepo) Create(ctx context.Context, c *entity.Claim) error {
	const q = `INSERT INTO claims (id, claim_number, patient_id, faskes_id, service_type,
			diagnosis, amount, status, ai_validation_score, fraud_risk_score,
			validation_data, documents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, COALESCE($12, '[]'::jsonb))
		RETURNING created_at, updated_at`
	return r.db.QueryRowxContext(ctx, q,
		c.ID, c.ClaimNumber, c.PatientID, c.FaskesID, c.ServiceType,
		c.Diagnosis, c.Amount, c.Status, c.AIValidationScore, c.FraudRiskScore,
		c.ValidationData, c.Documents,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches one claim or sql.ErrNoRows.
func (r *ClaimRepo) GetByID(ctx context.Context, id string) (*entity.Claim, error) {
	var row entity.Claim
	if err := r.db.GetContext(ctx, &row, `SELECT `+claimColumns+` FROM claims WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns all claims, newest first.
func (r *ClaimRepo) List(ctx context.Context) ([]entity.Claim, error) {
	var out []entity.Claim
	if err := r.db.SelectContext(ctx, &out, `SELECT `+claimColumns+` FROM claims ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByPatient returns claims where the given user is the patient,
// newest first.
func (r *ClaimRepo) ListByPatient(ctx context.Context, userID string) ([]entity.Claim, error) {
	var out []entity.Claim
	const q = `SELECT ` + claimColumns + ` FROM claims WHERE patient_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves a claim from one status to another with optional
// reviewer notes. The WHERE clause carries the expected current status so
// a concurrent transition loses instead of overwriting; 0 rows means the
// claim is gone or no longer in the expected status.
func (r *ClaimRepo) UpdateStatus(ctx context.Context, id string, from, to entity.Status, notes *string) (int64, error) {
	const q = `UPDATE claims SET status = $3, notes = COALESCE($4, notes), updated_at = NOW()
		WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, q, id, from, to, notes)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
