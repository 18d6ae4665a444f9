package finance

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/domain/access"
	domain "github.com/BruksfildServices01/daycare-manager/internal/domain/finance"
	"github.com/BruksfildServices01/daycare-manager/internal/httperr"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/payments"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

var errPaymentsDisabled = httperr.New(http.StatusServiceUnavailable, "payments_disabled", "Online payments are not configured")

type Checkout struct {
	store   store.Store
	gateway payments.Gateway
	audit   *audit.Dispatcher
}

func NewCheckout(
	s store.Store,
	gateway payments.Gateway,
	audit *audit.Dispatcher,
) *Checkout {
	return &Checkout{
		store:   s,
		gateway: gateway,
		audit:   audit,
	}
}

// Execute opens a hosted checkout for a pending payment and stores the
// preference id and URL on the record.
func (uc *Checkout) Execute(
	ctx context.Context,
	actor access.Principal,
	recordID uuid.UUID,
) (*models.Finance, error) {

	rec, err := uc.store.Finance().Get(ctx, recordID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if !actor.Owns(rec.ParentID) {
		return nil, httperr.ErrForbidden("Not authorized to update this record")
	}

	if err := domain.CanCheckout(rec); err != nil {
		return nil, err
	}

	co, err := uc.gateway.CreateCheckout(ctx, rec)
	if errors.Is(err, payments.ErrDisabled) {
		return nil, errPaymentsDisabled
	}
	if err != nil {
		return nil, err
	}

	rec.TransactionID = co.ID
	rec.CheckoutURL = co.URL
	if err := uc.store.Finance().Update(ctx, rec); err != nil {
		return nil, err
	}

	uc.audit.Record(actor.ID, "checkout_created", "finance", rec.ID, map[string]any{
		"preference": co.ID,
		"amount":     rec.Amount,
	})

	return rec, nil
}

func notFoundOr(err error) error {
	if store.IsNotFound(err) {
		return httperr.ErrNotFound("finance_not_found", "Financial record not found")
	}
	return err
}
