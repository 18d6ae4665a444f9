package notify

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/daycare-manager/internal/infra/memory"
	"github.com/BruksfildServices01/daycare-manager/internal/mail"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type recorder struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (r *recorder) Send(ctx context.Context, m mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, m)
	return nil
}

func TestSendStoresAndMirrorsUrgent(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	rec := &recorder{}
	q := mail.NewQueue(rec, 10)

	u := &models.User{FirstName: "Ana", LastName: "Lima", Email: "ana@example.com", Role: models.RoleParent}
	require.NoError(t, s.Users().Create(ctx, u))

	n := New(s, q)
	n.Send(ctx, Input{RecipientID: u.ID, Type: models.NotificationEmergency, Title: "Fever", Message: "Mia has a fever", Priority: models.PriorityUrgent})
	n.Send(ctx, Input{RecipientID: u.ID, Type: models.NotificationMessage, Title: "Hi", Message: "hello"})
	q.Close()

	list, err := s.Notifications().List(ctx, store.NotificationFilter{RecipientID: &u.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, item := range list {
		assert.Equal(t, models.NotificationUnread, item.Status)
	}

	require.Len(t, rec.sent, 1)
	assert.Equal(t, "ana@example.com", rec.sent[0].To)
	assert.Equal(t, "Fever", rec.sent[0].Subject)
	assert.Contains(t, rec.sent[0].HTML, "Mia has a fever")
}

func TestSendRespectsPreferences(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	rec := &recorder{}
	q := mail.NewQueue(rec, 10)

	u := &models.User{FirstName: "Ana", Email: "ana@example.com"}
	require.NoError(t, s.Users().Create(ctx, u))
	require.NoError(t, s.Preferences().Upsert(ctx, &models.NotificationPreference{UserID: u.ID, EmailEnabled: false}))

	New(s, q).Send(ctx, Input{RecipientID: u.ID, Type: models.NotificationPayment, Title: "Due", Priority: models.PriorityHigh})
	q.Close()

	assert.Empty(t, rec.sent)
}

func TestNilNotifierAndUnknownRecipient(t *testing.T) {
	var n *Notifier
	assert.NotPanics(t, func() { n.Send(context.Background(), Input{RecipientID: uuid.New()}) })

	s := memory.New()
	New(s, nil).Send(context.Background(), Input{RecipientID: uuid.Nil})
	count, err := s.Notifications().Count(context.Background(), store.NotificationFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}
