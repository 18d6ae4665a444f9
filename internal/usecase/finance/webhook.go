package finance

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	domain "github.com/BruksfildServices01/daycare-manager/internal/domain/finance"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/payments"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type Webhook struct {
	store   store.Store
	gateway payments.Gateway
	notify  *notify.Notifier
	audit   *audit.Dispatcher
}

func NewWebhook(
	s store.Store,
	gateway payments.Gateway,
	n *notify.Notifier,
	audit *audit.Dispatcher,
) *Webhook {
	return &Webhook{
		store:   s,
		gateway: gateway,
		notify:  n,
		audit:   audit,
	}
}

// Execute reconciles one gateway payment with its finance record. It
// returns nil, nil when the payment is still in flight.
func (uc *Webhook) Execute(ctx context.Context, paymentID int) (*models.Finance, error) {
	info, err := uc.gateway.PaymentStatus(ctx, paymentID)
	if errors.Is(err, payments.ErrDisabled) {
		return nil, errPaymentsDisabled
	}
	if err != nil {
		return nil, err
	}

	recordID, err := uuid.Parse(info.ExternalReference)
	if err != nil {
		return nil, httperr.ErrInvalid("invalid_reference", "Payment does not reference a financial record")
	}

	status, final := domain.StatusFromGateway(info.Status)
	if !final {
		log.Info().Int("payment", paymentID).Str("status", info.Status).Msg("payment still pending")
		return nil, nil
	}

	rec, err := uc.store.Finance().Get(ctx, recordID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if rec.Status == status {
		return rec, nil
	}

	from := rec.Status
	rec.Status = status
	rec.TransactionID = strconv.Itoa(paymentID)
	if err := uc.store.Finance().Update(ctx, rec); err != nil {
		return nil, err
	}

	uc.audit.Record(uuid.Nil, "payment_reconciled", "finance", rec.ID, map[string]any{
		"payment": paymentID,
		"from":    from,
		"to":      status,
	})

	priority := models.PriorityMedium
	if status == models.FinanceFailed {
		priority = models.PriorityHigh
	}
	id := rec.ID
	uc.notify.Send(ctx, notify.Input{
		RecipientID: rec.ParentID,
		Type:        models.NotificationPayment,
		Title:       "Payment " + string(status),
		Message:     fmt.Sprintf("Your payment of %.2f for %q is %s.", rec.Amount, rec.Description, status),
		Related:     models.RelatedTo{Model: "Payment", ID: &id},
		Priority:    priority,
		ActionURL:   "/finance",
	})

	return rec, nil
}
