package alert

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/healthchain/service-claims-go/internal/alert/entity"
)

// Notifier writes system-raised alerts. Claim scoring uses it to flag
// high-risk claims; write failures are logged and swallowed so a feed
// hiccup never fails the operation that raised the alert.
type Notifier struct {
	store  Store
	logger *zap.SugaredLogger
}

func NewNotifier(store Store, logger *zap.SugaredLogger) *Notifier {
	return &Notifier{store: store, logger: logger}
}

// FraudDetected records a high-severity fraud alert for a flagged claim.
func (n *Notifier) FraudDetected(ctx context.Context, claimNumber, faskesID string, fraudScore int) {
	claimID := claimNumber
	a := &entity.Alert{
		ID:       newID(time.Now().UTC()),
		Type:     "fraud",
		Severity: "high",
		Message:  fmt.Sprintf("High fraud risk detected: %s - Risk Score: %d", claimNumber, fraudScore),
		ClaimID:  &claimID,
	}
	if faskesID != "" {
		fk := faskesID
		a.FaskesID = &fk
	}
	if err := n.store.Create(ctx, a); err != nil {
		n.logger.Warnw("fraud alert write failed", "claim_number", claimNumber, "err", err)
	}
}
