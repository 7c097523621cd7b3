package faskes

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/healthchain/service-claims-go/internal/faskes/entity"
)

// Lister is the read surface the handler needs.
type Lister interface {
	List(ctx context.Context) ([]entity.Faskes, error)
}

// Handler exposes HTTP endpoints for facility lookups.
type Handler struct {
	repo   Lister
	logger *zap.SugaredLogger
}

func NewHandler(repo Lister, logger *zap.SugaredLogger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /api/faskes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Errorw("faskes list failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list faskes"})
		return
	}
	if list == nil {
		list = []entity.Faskes{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "faskes": list})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
