package payments

import (
	"context"
	"fmt"
	"sync"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

// Fake is an in-process gateway for tests and memory-store runs. Payments
// are registered with SetPayment and looked up by the webhook.
type Fake struct {
	mu       sync.Mutex
	payments map[int]PaymentInfo
	Created  []string
}

func NewFake() *Fake {
	return &Fake{payments: map[int]PaymentInfo{}}
}

func (f *Fake) CreateCheckout(ctx context.Context, rec *models.Finance) (Checkout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("pref-%d", len(f.Created)+1)
	f.Created = append(f.Created, rec.ID.String())
	return Checkout{ID: id, URL: "https://checkout.test/" + id}, nil
}

func (f *Fake) SetPayment(id int, info PaymentInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments[id] = info
}

func (f *Fake) PaymentStatus(ctx context.Context, id int) (PaymentInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.payments[id]
	if !ok {
		return PaymentInfo{}, fmt.Errorf("payment %d not found", id)
	}
	return info, nil
}
