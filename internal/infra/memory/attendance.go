package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type attendanceRepo struct{ s *Store }

func (t *tables) attendanceMatches(a models.Attendance, f store.AttendanceFilter) bool {
	if f.ParentID != nil {
		c, ok := t.children[a.ChildID]
		if !ok || c.v.ParentID != *f.ParentID {
			return false
		}
	}
	if f.BabysitterID != nil && a.BabysitterID != *f.BabysitterID {
		return false
	}
	if f.ChildID != nil && a.ChildID != *f.ChildID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return dateIn(a.Date, f.From, f.To)
}

func (t *tables) populateAttendance(a models.Attendance) models.Attendance {
	a.Child = t.childRef(a.ChildID)
	a.Babysitter = t.userRef(a.BabysitterID)
	return a
}

func stripAttendance(a models.Attendance) models.Attendance {
	a.Child = nil
	a.Babysitter = nil
	return a
}

func (r attendanceRepo) Create(ctx context.Context, a *models.Attendance) error {
	return r.s.write(func(t *tables, now time.Time) error {
		_ = a.BeforeCreate(nil)
		if _, ok := t.attendance[a.ID]; ok {
			return errors.Wrap(ErrDuplicate, "create attendance")
		}
		if a.Status == "" {
			a.Status = models.AttendancePresent
		}
		stamp(&a.CreatedAt, &a.UpdatedAt, now)
		t.attendance[a.ID] = row[models.Attendance]{seq: t.next(), v: stripAttendance(*a)}
		return nil
	})
}

func (r attendanceRepo) Get(ctx context.Context, id uuid.UUID) (*models.Attendance, error) {
	var out *models.Attendance
	r.s.read(func(t *tables) {
		if a, ok := t.attendance[id]; ok {
			v := t.populateAttendance(a.v)
			out = &v
		}
	})
	if out == nil {
		return nil, notFound("get attendance")
	}
	return out, nil
}

func (r attendanceRepo) List(ctx context.Context, f store.AttendanceFilter) ([]models.Attendance, error) {
	var out []models.Attendance
	r.s.read(func(t *tables) {
		out = collect(t.attendance, func(a models.Attendance) bool {
			return t.attendanceMatches(a, f)
		}, func(a, b models.Attendance) int {
			if c := cmpTime(b.Date.Time, a.Date.Time); c != 0 {
				return c
			}
			return cmpTime(b.CreatedAt, a.CreatedAt)
		}, true)
		for i := range out {
			out[i] = t.populateAttendance(out[i])
		}
	})
	return out, nil
}

func (r attendanceRepo) Update(ctx context.Context, a *models.Attendance) error {
	return r.s.write(func(t *tables, now time.Time) error {
		existing, ok := t.attendance[a.ID]
		if !ok {
			return notFound("update attendance")
		}
		stamp(&a.CreatedAt, &a.UpdatedAt, now)
		t.attendance[a.ID] = row[models.Attendance]{seq: existing.seq, v: stripAttendance(*a)}
		return nil
	})
}

func (r attendanceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(t *tables, now time.Time) error {
		if _, ok := t.attendance[id]; !ok {
			return notFound("delete attendance")
		}
		delete(t.attendance, id)
		return nil
	})
}
