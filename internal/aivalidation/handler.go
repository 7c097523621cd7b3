package aivalidation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/healthchain/service-claims-go/internal/claim"
	claimentity "github.com/healthchain/service-claims-go/internal/claim/entity"
)

// ClaimGetter loads a claim so fraud detection can read its stored score.
type ClaimGetter interface {
	Get(ctx context.Context, id string) (*claimentity.Claim, error)
}

// Handler serves the mock AI endpoints.
type Handler struct {
	validator *Validator
	claims    ClaimGetter
	logger    *zap.SugaredLogger
}

func NewHandler(validator *Validator, claims ClaimGetter, logger *zap.SugaredLogger) *Handler {
	return &Handler{validator: validator, claims: claims, logger: logger}
}

// ValidateDocumentRequest is the request body for POST /api/ai/validate-document.
// Field names are camelCase on the wire, matching the frontend contract.
type ValidateDocumentRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
}

// ValidateDocument handles POST /api/ai/validate-document. Missing file
// metadata is filled with demo defaults rather than rejected, and the
// result is returned flat (no envelope).
func (h *Handler) ValidateDocument(w http.ResponseWriter, r *http.Request) {
	var req ValidateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.FileName == "" {
		req.FileName = "document.pdf"
	}
	if req.FileType == "" {
		req.FileType = "application/pdf"
	}

	result := h.validator.ValidateDocument(req.FileName, req.FileType, req.FileSize)
	h.writeJSON(w, http.StatusOK, result)
}

// DetectFraudRequest is the request body for POST /api/ai/detect-fraud.
type DetectFraudRequest struct {
	ClaimID string `json:"claimId"`
}

// DetectFraud handles POST /api/ai/detect-fraud. The analysis is derived
// from the fraud score stored on the claim at creation time.
func (h *Handler) DetectFraud(w http.ResponseWriter, r *http.Request) {
	var req DetectFraudRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.ClaimID == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "claimId is required"})
		return
	}

	c, err := h.claims.Get(r.Context(), req.ClaimID)
	if err != nil {
		if errors.Is(err, claim.ErrClaimNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "claim not found"})
			return
		}
		h.logger.Warnw("fraud detection claim lookup failed", "claim_id", req.ClaimID, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to analyze claim"})
		return
	}

	score := ClaimFraudRisk
	if c.FraudRiskScore != nil {
		score = *c.FraudRiskScore
	}
	analysis := h.validator.DetectFraud(c.ID, score)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"fraudAnalysis": analysis,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
