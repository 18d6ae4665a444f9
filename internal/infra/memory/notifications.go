package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type notificationRepo struct{ s *Store }

func notificationMatches(n models.Notification, f store.NotificationFilter) bool {
	if f.RecipientID != nil && n.RecipientID != *f.RecipientID {
		return false
	}
	if f.SenderID != nil && !eqRef(n.SenderID, *f.SenderID) {
		return false
	}
	if f.Status != "" && n.Status != f.Status {
		return false
	}
	if f.Type != "" && n.Type != f.Type {
		return false
	}
	return true
}

func (t *tables) populateNotification(n models.Notification) models.Notification {
	n.Recipient = t.userRef(n.RecipientID)
	n.Sender = t.userRefPtr(n.SenderID)
	return n
}

func stripNotification(n models.Notification) models.Notification {
	n.Recipient = nil
	n.Sender = nil
	return n
}

func (r notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	return r.s.write(func(t *tables, now time.Time) error {
		_ = n.BeforeCreate(nil)
		if _, ok := t.notifications[n.ID]; ok {
			return errors.Wrap(ErrDuplicate, "create notification")
		}
		if n.Status == "" {
			n.Status = models.NotificationUnread
		}
		if n.Priority == "" {
			n.Priority = models.PriorityMedium
		}
		stamp(&n.CreatedAt, &n.UpdatedAt, now)
		t.notifications[n.ID] = row[models.Notification]{seq: t.next(), v: stripNotification(*n)}
		return nil
	})
}

func (r notificationRepo) Get(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var out *models.Notification
	r.s.read(func(t *tables) {
		if n, ok := t.notifications[id]; ok {
			v := t.populateNotification(n.v)
			out = &v
		}
	})
	if out == nil {
		return nil, notFound("get notification")
	}
	return out, nil
}

func (r notificationRepo) List(ctx context.Context, f store.NotificationFilter) ([]models.Notification, error) {
	var out []models.Notification
	r.s.read(func(t *tables) {
		out = collect(t.notifications, func(n models.Notification) bool {
			return notificationMatches(n, f)
		}, func(a, b models.Notification) int {
			return cmpTime(b.CreatedAt, a.CreatedAt)
		}, true)
		for i := range out {
			out[i] = t.populateNotification(out[i])
		}
	})
	return out, nil
}

func (r notificationRepo) Count(ctx context.Context, f store.NotificationFilter) (int64, error) {
	var n int64
	r.s.read(func(t *tables) {
		for _, rec := range t.notifications {
			if notificationMatches(rec.v, f) {
				n++
			}
		}
	})
	return n, nil
}

func (r notificationRepo) Update(ctx context.Context, n *models.Notification) error {
	return r.s.write(func(t *tables, now time.Time) error {
		existing, ok := t.notifications[n.ID]
		if !ok {
			return notFound("update notification")
		}
		stamp(&n.CreatedAt, &n.UpdatedAt, now)
		t.notifications[n.ID] = row[models.Notification]{seq: existing.seq, v: stripNotification(*n)}
		return nil
	})
}

func (r notificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int64, error) {
	var changed int64
	err := r.s.write(func(t *tables, now time.Time) error {
		for id, rec := range t.notifications {
			if rec.v.RecipientID != recipientID || rec.v.Status != models.NotificationUnread {
				continue
			}
			readAt := at
			rec.v.Status = models.NotificationRead
			rec.v.ReadAt = &readAt
			rec.v.UpdatedAt = at
			t.notifications[id] = rec
			changed++
		}
		return nil
	})
	return changed, err
}

func (r notificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(t *tables, now time.Time) error {
		if _, ok := t.notifications[id]; !ok {
			return notFound("delete notification")
		}
		delete(t.notifications, id)
		return nil
	})
}

type preferenceRepo struct{ s *Store }

func (r preferenceRepo) Get(ctx context.Context, userID uuid.UUID) (*models.NotificationPreference, error) {
	var out *models.NotificationPreference
	r.s.read(func(t *tables) {
		for _, p := range t.preferences {
			if p.v.UserID == userID {
				v := p.v
				out = &v
				return
			}
		}
	})
	if out == nil {
		return nil, notFound("get notification preferences")
	}
	return out, nil
}

func (r preferenceRepo) Upsert(ctx context.Context, p *models.NotificationPreference) error {
	return r.s.write(func(t *tables, now time.Time) error {
		for id, existing := range t.preferences {
			if existing.v.UserID != p.UserID {
				continue
			}
			p.ID = existing.v.ID
			p.CreatedAt = existing.v.CreatedAt
			p.UpdatedAt = now
			t.preferences[id] = row[models.NotificationPreference]{seq: existing.seq, v: *p}
			return nil
		}

		_ = p.BeforeCreate(nil)
		stamp(&p.CreatedAt, &p.UpdatedAt, now)
		t.preferences[p.ID] = row[models.NotificationPreference]{seq: t.next(), v: *p}
		return nil
	})
}
