package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type childRepo struct{ s *Store }

func (t *tables) childMatches(c models.Child, f store.ChildFilter) bool {
	if f.ParentID != nil && c.ParentID != *f.ParentID {
		return false
	}
	if f.Active != nil && c.IsActive != *f.Active {
		return false
	}
	if f.BabysitterID != nil {
		found := false
		for _, s := range t.schedules {
			if s.v.ChildID == c.ID && s.v.BabysitterID == *f.BabysitterID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (t *tables) populateChild(c models.Child) models.Child {
	c.Parent = t.userRef(c.ParentID)
	return c
}

func (r childRepo) Create(ctx context.Context, c *models.Child) error {
	return r.s.write(func(t *tables, now time.Time) error {
		_ = c.BeforeCreate(nil)
		_ = c.BeforeSave(nil)
		if _, ok := t.children[c.ID]; ok {
			return errors.Wrap(ErrDuplicate, "create child")
		}
		stamp(&c.CreatedAt, &c.UpdatedAt, now)
		v := *c
		v.Parent = nil
		t.children[c.ID] = row[models.Child]{seq: t.next(), v: v}
		return nil
	})
}

func (r childRepo) Get(ctx context.Context, id uuid.UUID) (*models.Child, error) {
	var out *models.Child
	r.s.read(func(t *tables) {
		if c, ok := t.children[id]; ok {
			v := t.populateChild(c.v)
			out = &v
		}
	})
	if out == nil {
		return nil, notFound("get child")
	}
	return out, nil
}

func (r childRepo) List(ctx context.Context, f store.ChildFilter) ([]models.Child, error) {
	var out []models.Child
	r.s.read(func(t *tables) {
		out = collect(t.children, func(c models.Child) bool {
			return t.childMatches(c, f)
		}, func(a, b models.Child) int {
			return cmpTime(a.CreatedAt, b.CreatedAt)
		}, false)
		for i := range out {
			out[i] = t.populateChild(out[i])
		}
	})
	return out, nil
}

func (r childRepo) Count(ctx context.Context, f store.ChildFilter) (int64, error) {
	var n int64
	r.s.read(func(t *tables) {
		for _, c := range t.children {
			if t.childMatches(c.v, f) {
				n++
			}
		}
	})
	return n, nil
}

func (r childRepo) Update(ctx context.Context, c *models.Child) error {
	return r.s.write(func(t *tables, now time.Time) error {
		existing, ok := t.children[c.ID]
		if !ok {
			return notFound("update child")
		}
		_ = c.BeforeSave(nil)
		stamp(&c.CreatedAt, &c.UpdatedAt, now)
		v := *c
		v.Parent = nil
		t.children[c.ID] = row[models.Child]{seq: existing.seq, v: v}
		return nil
	})
}

func (r childRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(t *tables, now time.Time) error {
		if _, ok := t.children[id]; !ok {
			return notFound("delete child")
		}
		delete(t.children, id)
		t.cascadeChild(id)
		return nil
	})
}

func (t *tables) cascadeChild(id uuid.UUID) {
	for aid, a := range t.attendance {
		if a.v.ChildID == id {
			delete(t.attendance, aid)
		}
	}
	for sid, s := range t.schedules {
		if s.v.ChildID == id {
			delete(t.schedules, sid)
		}
	}
	for fid, f := range t.finance {
		if eqRef(f.v.ChildID, id) {
			f.v.ChildID = nil
			t.finance[fid] = f
		}
	}
}
