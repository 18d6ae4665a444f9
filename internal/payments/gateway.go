// Package payments talks to the Mercado Pago checkout API.
package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

var ErrDisabled = errors.New("payment gateway is not configured")

type Checkout struct {
	ID  string
	URL string
}

// PaymentInfo is the part of a gateway payment the webhook needs.
type PaymentInfo struct {
	Status            string
	ExternalReference string
}

type Gateway interface {
	CreateCheckout(ctx context.Context, f *models.Finance) (Checkout, error)
	PaymentStatus(ctx context.Context, paymentID int) (PaymentInfo, error)
}

type MercadoPago struct {
	preferences preference.Client
	payments    payment.Client
	currency    string
	webhookURL  string
}

func NewMercadoPago(accessToken, currency, webhookURL string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		currency:    currency,
		webhookURL:  webhookURL,
	}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, f *models.Finance) (Checkout, error) {
	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         f.ID.String(),
				Title:      f.Description,
				Quantity:   1,
				UnitPrice:  f.Amount,
				CurrencyID: m.currency,
			},
		},
		ExternalReference: f.ID.String(),
		NotificationURL:   m.webhookURL,
	}

	res, err := m.preferences.Create(ctx, req)
	if err != nil {
		return Checkout{}, fmt.Errorf("create preference: %w", err)
	}
	return Checkout{ID: res.ID, URL: res.InitPoint}, nil
}

func (m *MercadoPago) PaymentStatus(ctx context.Context, paymentID int) (PaymentInfo, error) {
	res, err := m.payments.Get(ctx, paymentID)
	if err != nil {
		return PaymentInfo{}, fmt.Errorf("get payment %d: %w", paymentID, err)
	}
	return PaymentInfo{Status: res.Status, ExternalReference: res.ExternalReference}, nil
}

// Disabled is used when no access token is configured.
type Disabled struct{}

func (Disabled) CreateCheckout(context.Context, *models.Finance) (Checkout, error) {
	return Checkout{}, ErrDisabled
}

func (Disabled) PaymentStatus(context.Context, int) (PaymentInfo, error) {
	return PaymentInfo{}, ErrDisabled
}
