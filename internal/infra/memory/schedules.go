package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type scheduleRepo struct{ s *Store }

func scheduleMatches(s models.Schedule, f store.ScheduleFilter) bool {
	if f.ParentID != nil && s.ParentID != *f.ParentID {
		return false
	}
	if f.BabysitterID != nil && s.BabysitterID != *f.BabysitterID {
		return false
	}
	if f.ChildID != nil && s.ChildID != *f.ChildID {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.StartsOn != nil && !s.StartDate.Equal(f.StartsOn.Time) {
		return false
	}
	if f.EndsBefore != nil && !s.EndDate.Before(*f.EndsBefore) {
		return false
	}
	if f.From != nil && s.EndDate.Before(*f.From) {
		return false
	}
	if f.To != nil && s.StartDate.After(*f.To) {
		return false
	}
	return true
}

func (t *tables) populateSchedule(s models.Schedule) models.Schedule {
	s.Child = t.childRef(s.ChildID)
	s.Babysitter = t.userRef(s.BabysitterID)
	s.Parent = t.userRef(s.ParentID)
	return s
}

func stripSchedule(s models.Schedule) models.Schedule {
	s.Child = nil
	s.Babysitter = nil
	s.Parent = nil
	return s
}

func (r scheduleRepo) Create(ctx context.Context, s *models.Schedule) error {
	return r.s.write(func(t *tables, now time.Time) error {
		_ = s.BeforeCreate(nil)
		if _, ok := t.schedules[s.ID]; ok {
			return errors.Wrap(ErrDuplicate, "create schedule")
		}
		if s.Status == "" {
			s.Status = models.SchedulePending
		}
		if s.PaymentStatus == "" {
			s.PaymentStatus = models.PaymentPending
		}
		stamp(&s.CreatedAt, &s.UpdatedAt, now)
		t.schedules[s.ID] = row[models.Schedule]{seq: t.next(), v: stripSchedule(*s)}
		return nil
	})
}

func (r scheduleRepo) Get(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	var out *models.Schedule
	r.s.read(func(t *tables) {
		if s, ok := t.schedules[id]; ok {
			v := t.populateSchedule(s.v)
			out = &v
		}
	})
	if out == nil {
		return nil, notFound("get schedule")
	}
	return out, nil
}

func (r scheduleRepo) List(ctx context.Context, f store.ScheduleFilter) ([]models.Schedule, error) {
	var out []models.Schedule
	r.s.read(func(t *tables) {
		out = collect(t.schedules, func(s models.Schedule) bool {
			return scheduleMatches(s, f)
		}, func(a, b models.Schedule) int {
			if c := cmpTime(a.StartDate.Time, b.StartDate.Time); c != 0 {
				return c
			}
			return cmpTime(a.CreatedAt, b.CreatedAt)
		}, false)
		for i := range out {
			out[i] = t.populateSchedule(out[i])
		}
	})
	return out, nil
}

func (r scheduleRepo) Count(ctx context.Context, f store.ScheduleFilter) (int64, error) {
	var n int64
	r.s.read(func(t *tables) {
		for _, s := range t.schedules {
			if scheduleMatches(s.v, f) {
				n++
			}
		}
	})
	return n, nil
}

func (r scheduleRepo) Update(ctx context.Context, s *models.Schedule) error {
	return r.s.write(func(t *tables, now time.Time) error {
		existing, ok := t.schedules[s.ID]
		if !ok {
			return notFound("update schedule")
		}
		stamp(&s.CreatedAt, &s.UpdatedAt, now)
		t.schedules[s.ID] = row[models.Schedule]{seq: existing.seq, v: stripSchedule(*s)}
		return nil
	})
}

func (r scheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(t *tables, now time.Time) error {
		if _, ok := t.schedules[id]; !ok {
			return notFound("delete schedule")
		}
		delete(t.schedules, id)
		return nil
	})
}
