// Package alert implements the notification feed: fraud alerts raised
// by claim scoring and custom alerts posted by operators.
package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/healthchain/service-claims-go/internal/alert/entity"
	"github.com/healthchain/service-claims-go/internal/auth"
	userentity "github.com/healthchain/service-claims-go/internal/user/entity"
)

// Store is the persistence surface the feed needs.
type Store interface {
	Create(ctx context.Context, a *entity.Alert) error
	ListAll(ctx context.Context) ([]entity.Alert, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Alert, error)
}

// Handler serves the alert feed endpoints.
type Handler struct {
	store  Store
	logger *zap.SugaredLogger
}

func NewHandler(store Store, logger *zap.SugaredLogger) *Handler {
	return &Handler{store: store, logger: logger}
}

// List handles GET /api/alerts. The BPJS back office sees every alert;
// other accounts see only the alerts scoped to them.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CallerFromContext(r.Context())

	var (
		alerts []entity.Alert
		err    error
	)
	if caller.Role == userentity.RoleAdminBPJS {
		alerts, err = h.store.ListAll(r.Context())
	} else {
		alerts, err = h.store.ListByUser(r.Context(), caller.UserID)
	}
	if err != nil {
		h.logger.Warnw("alert list failed", "user_id", caller.UserID, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch alerts"})
		return
	}
	if alerts == nil {
		alerts = []entity.Alert{}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"alerts":  alerts,
	})
}

// CreateRequest is the request body for POST /api/alerts/create.
type CreateRequest struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	ClaimID  string `json:"claimId,omitempty"`
	FaskesID string `json:"faskesId,omitempty"`
}

// Create handles POST /api/alerts/create. The new alert is scoped to
// the creating account so it shows up on their own feed.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if req.Type == "" || req.Severity == "" || req.Message == "" {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "type, severity and message are required"})
		return
	}

	caller, _ := auth.CallerFromContext(r.Context())

	a := &entity.Alert{
		ID:       newID(time.Now().UTC()),
		Type:     req.Type,
		Severity: req.Severity,
		Message:  req.Message,
	}
	if req.ClaimID != "" {
		a.ClaimID = &req.ClaimID
	}
	if req.FaskesID != "" {
		a.FaskesID = &req.FaskesID
	}
	if caller.UserID != "" {
		id := caller.UserID
		a.UserID = &id
	}

	if err := h.store.Create(r.Context(), a); err != nil {
		h.logger.Warnw("alert create failed", "type", req.Type, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create alert"})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"alert":   a,
	})
}

// newID builds the display identifier: ALERT-<unix ms>-<4 digits>. The
// primary key constraint backs uniqueness.
func newID(now time.Time) string {
	return fmt.Sprintf("ALERT-%d-%04d", now.UnixMilli(), 1000+rand.Intn(9000))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
