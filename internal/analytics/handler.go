// Package analytics serves the per-role dashboard aggregates computed
// over the claims ledger.
package analytics

import (
	"context"
	"encoding/json"
	"math"
	"math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/healthchain/service-claims-go/internal/auth"
	"github.com/healthchain/service-claims-go/internal/claim"
	claimentity "github.com/healthchain/service-claims-go/internal/claim/entity"
	userentity "github.com/healthchain/service-claims-go/internal/user/entity"
)

// ClaimSource reads the claims the aggregates are computed over.
type ClaimSource interface {
	List(ctx context.Context) ([]claimentity.Claim, error)
	ListByPatient(ctx context.Context, userID string) ([]claimentity.Claim, error)
}

// Handler serves the analytics endpoints.
type Handler struct {
	claims ClaimSource
	logger *zap.SugaredLogger
}

func NewHandler(claims ClaimSource, logger *zap.SugaredLogger) *Handler {
	return &Handler{claims: claims, logger: logger}
}

// Dashboard handles GET /api/analytics/dashboard/{role}. The BPJS back
// office gets portfolio-wide aggregates; a facility account gets the
// stats of its own claims. Any other role gets an empty object.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	role := chi.URLParam(r, "role")
	caller, _ := auth.CallerFromContext(r.Context())

	var (
		analytics map[string]any
		err       error
	)
	switch userentity.Role(role) {
	case userentity.RoleAdminBPJS:
		analytics, err = h.portfolioStats(r.Context())
	case userentity.RoleFaskes:
		analytics, err = h.facilityStats(r.Context(), caller.UserID)
	default:
		analytics = map[string]any{}
	}
	if err != nil {
		h.logger.Warnw("analytics failed", "role", role, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch analytics"})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"analytics": analytics,
	})
}

func (h *Handler) portfolioStats(ctx context.Context) (map[string]any, error) {
	claims, err := h.claims.List(ctx)
	if err != nil {
		return nil, err
	}

	var approved, pending, rejected, fraud int
	var totalAmount float64
	for _, c := range claims {
		switch c.Status {
		case claimentity.StatusApproved:
			approved++
		case claimentity.StatusProcessing:
			pending++
		case claimentity.StatusRejected:
			rejected++
		}
		if c.FraudRiskScore != nil && *c.FraudRiskScore >= claim.FraudAlertThreshold {
			fraud++
		}
		if c.Amount != nil {
			totalAmount += *c.Amount
		}
	}

	approvalRate := 0.0
	if len(claims) > 0 {
		approvalRate = round1(float64(approved) / float64(len(claims)) * 100)
	}

	return map[string]any{
		"totalClaims":    len(claims),
		"approvedClaims": approved,
		"pendingClaims":  pending,
		"rejectedClaims": rejected,
		"fraudDetected":  fraud,
		"totalAmount":    totalAmount,
		// static until processing telemetry exists
		"avgProcessingTime": 2.4,
		"approvalRate":      approvalRate,
	}, nil
}

func (h *Handler) facilityStats(ctx context.Context, userID string) (map[string]any, error) {
	claims, err := h.claims.ListByPatient(ctx, userID)
	if err != nil {
		return nil, err
	}

	var approved int
	var aiSum float64
	for _, c := range claims {
		if c.Status == claimentity.StatusApproved {
			approved++
		}
		if c.AIValidationScore != nil {
			aiSum += float64(*c.AIValidationScore)
		}
	}

	avgAiScore := 0.0
	if len(claims) > 0 {
		avgAiScore = round1(aiSum / float64(len(claims)))
	}

	return map[string]any{
		"totalClaims":    len(claims),
		"approvedClaims": approved,
		"avgAiScore":     avgAiScore,
		"currentQueue":   rand.Intn(150) + 50,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
