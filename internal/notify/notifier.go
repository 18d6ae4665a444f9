// Package notify creates in-app notifications and mirrors the important
// ones to e-mail.
package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/daycare-manager/internal/domain/notification"
	"github.com/BruksfildServices01/daycare-manager/internal/mail"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type Input struct {
	RecipientID uuid.UUID
	SenderID    *uuid.UUID
	Type        models.NotificationType
	Title       string
	Message     string
	Related     models.RelatedTo
	Priority    models.Priority
	ActionURL   string
	Action      bool
}

type Notifier struct {
	store store.Store
	mail  *mail.Queue
}

// New accepts a nil mail queue; e-mail copies are then skipped.
func New(s store.Store, q *mail.Queue) *Notifier {
	return &Notifier{store: s, mail: q}
}

// Deliver stores n and queues an e-mail copy when the recipient wants one.
func (n *Notifier) Deliver(ctx context.Context, notif *models.Notification) error {
	if notif.Status == "" {
		notif.Status = models.NotificationUnread
	}
	if notif.Priority == "" {
		notif.Priority = models.PriorityMedium
	}

	if err := n.store.Notifications().Create(ctx, notif); err != nil {
		return err
	}

	n.mirror(ctx, notif)
	return nil
}

// Send builds and delivers a notification. Failures are logged, not
// returned: a notification never fails the operation that triggered it.
func (n *Notifier) Send(ctx context.Context, in Input) {
	if n == nil || in.RecipientID == uuid.Nil {
		return
	}
	notif := &models.Notification{
		RecipientID:    in.RecipientID,
		SenderID:       in.SenderID,
		Type:           in.Type,
		Title:          in.Title,
		Message:        in.Message,
		RelatedTo:      in.Related,
		Priority:       in.Priority,
		ActionRequired: in.Action,
		ActionURL:      in.ActionURL,
	}
	if err := n.Deliver(ctx, notif); err != nil {
		log.Error().Err(err).
			Str("recipient", in.RecipientID.String()).
			Str("type", string(in.Type)).
			Msg("notification failed")
	}
}

func (n *Notifier) mirror(ctx context.Context, notif *models.Notification) {
	if n.mail == nil {
		return
	}

	pref, err := n.store.Preferences().Get(ctx, notif.RecipientID)
	if err != nil && !store.IsNotFound(err) {
		log.Error().Err(err).Msg("load notification preferences")
		return
	}
	if !domain.ShouldEmail(notif, pref) {
		return
	}

	recipient, err := n.store.Users().Get(ctx, notif.RecipientID)
	if err != nil {
		log.Error().Err(err).Msg("load notification recipient")
		return
	}

	body, err := mail.RenderNotification(mail.NotificationData{
		Name:      recipient.FirstName,
		Title:     notif.Title,
		Body:      notif.Message,
		ActionURL: notif.ActionURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("render notification mail")
		return
	}

	n.mail.Enqueue(mail.Message{
		To:      recipient.Email,
		Subject: notif.Title,
		HTML:    body,
	})
}
