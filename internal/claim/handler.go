package claim

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/healthchain/service-claims-go/internal/auth"
	"github.com/healthchain/service-claims-go/internal/claim/entity"
	userentity "github.com/healthchain/service-claims-go/internal/user/entity"
)

// Metrics is the counter surface this handler reports to.
type Metrics interface {
	RecordClaimCreated(amount float64)
	RecordClaimStatus(status string)
}

// Handler exposes HTTP endpoints for claim operations.
type Handler struct {
	svc     *Service
	metrics Metrics
	logger  *zap.SugaredLogger
}

func NewHandler(svc *Service, metrics Metrics, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, metrics: metrics, logger: logger}
}

// CreateRequest is the request body for POST /api/claims/create.
type CreateRequest struct {
	PatientName string   `json:"patient_name"`
	Service     string   `json:"service"`
	Diagnosis   string   `json:"diagnosis"`
	Amount      float64  `json:"amount"`
	Documents   []string `json:"documents"`
	FaskesID    string   `json:"faskes_id,omitempty"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid claim payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.Service == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "service is required"})
		return
	}

	c, err := h.svc.Create(r.Context(), callerFromRequest(r), CreateInput{
		PatientName: req.PatientName,
		ServiceType: req.Service,
		Diagnosis:   req.Diagnosis,
		Amount:      req.Amount,
		Documents:   req.Documents,
		FaskesID:    req.FaskesID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFaskesAvailable):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "no faskes found"})
		case errors.Is(err, ErrInvalidAmount):
			h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "amount must be a non-negative number"})
		default:
			h.logger.Warnw("claim create failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create claim"})
		}
		return
	}

	h.metrics.RecordClaimCreated(req.Amount)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"claim":   c,
		"message": "Claim created successfully",
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrClaimNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "claim not found"})
			return
		}
		h.logger.Warnw("claim get failed", "id", id, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch claim"})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "claim": c})
}

// List handles GET /api/claims. Restricted to the insurance authority.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CallerFromContext(r.Context())
	if caller.Role != userentity.RoleAdminBPJS {
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "admin access required"})
		return
	}

	claims, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Warnw("claim list failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list claims"})
		return
	}
	if claims == nil {
		claims = []entity.Claim{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"claims":  claims,
		"total":   len(claims),
	})
}

// ListByUser handles GET /api/claims/user/{userID}. A caller may read
// their own claims; the authority may read anyone's.
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "userID")
	caller, _ := auth.CallerFromContext(r.Context())

	if caller.UserID != targetID && caller.Role != userentity.RoleAdminBPJS {
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "unauthorized access"})
		return
	}

	claims, err := h.svc.ListByPatient(r.Context(), targetID)
	if err != nil {
		h.logger.Warnw("claim list by user failed", "user_id", targetID, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list claims"})
		return
	}
	if claims == nil {
		claims = []entity.Claim{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "claims": claims})
}

// UpdateStatusRequest is the request body for PUT /api/claims/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	c, err := h.svc.UpdateStatus(r.Context(), callerFromRequest(r), id, req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrClaimNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "claim not found"})
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition):
			h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		default:
			h.logger.Warnw("claim status update failed", "id", id, "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update claim"})
		}
		return
	}

	h.metrics.RecordClaimStatus(string(c.Status))
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "claim": c})
}

func callerFromRequest(r *http.Request) Caller {
	identity, ok := auth.CallerFromContext(r.Context())
	if !ok {
		return Caller{}
	}
	return Caller{UserID: identity.UserID, Role: identity.Role}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
