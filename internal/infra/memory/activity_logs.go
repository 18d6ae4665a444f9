package memory

import (
	"context"
	"time"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type activityLogRepo struct{ s *Store }

func (r activityLogRepo) Create(ctx context.Context, l *models.ActivityLog) error {
	return r.s.write(func(t *tables, now time.Time) error {
		_ = l.BeforeCreate(nil)
		if l.CreatedAt.IsZero() {
			l.CreatedAt = now
		}
		t.activityLogs[l.ID] = row[models.ActivityLog]{seq: t.next(), v: *l}
		return nil
	})
}

func (r activityLogRepo) List(ctx context.Context, f store.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	var all []models.ActivityLog
	r.s.read(func(t *tables) {
		all = collect(t.activityLogs, func(l models.ActivityLog) bool {
			if f.Action != "" && l.Action != f.Action {
				return false
			}
			if f.Entity != "" && l.Entity != f.Entity {
				return false
			}
			if f.From != nil && l.CreatedAt.Before(*f.From) {
				return false
			}
			if f.To != nil && l.CreatedAt.After(*f.To) {
				return false
			}
			return true
		}, func(a, b models.ActivityLog) int {
			return cmpTime(b.CreatedAt, a.CreatedAt)
		}, true)
	})

	total := int64(len(all))
	start := f.Offset
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	return all[start:end], total, nil
}
