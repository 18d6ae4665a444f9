package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type babysitterRepo struct{ s *Store }

func babysitterMatches(b models.Babysitter, f store.BabysitterFilter) bool {
	if f.Available != nil && b.IsAvailable != *f.Available {
		return false
	}
	if f.Language != "" {
		for _, l := range b.Languages {
			if strings.EqualFold(l, f.Language) {
				return true
			}
		}
		return false
	}
	return true
}

func (t *tables) populateBabysitter(b models.Babysitter) models.Babysitter {
	b.User = t.userRef(b.UserID)
	return b
}

func (r babysitterRepo) Create(ctx context.Context, b *models.Babysitter) error {
	return r.s.write(func(t *tables, now time.Time) error {
		_ = b.BeforeCreate(nil)
		_ = b.BeforeSave(nil)
		for _, existing := range t.babysitters {
			if existing.v.ID == b.ID || existing.v.UserID == b.UserID {
				return errors.Wrap(ErrDuplicate, "create babysitter")
			}
		}
		stamp(&b.CreatedAt, &b.UpdatedAt, now)
		v := *b
		v.User = nil
		t.babysitters[b.ID] = row[models.Babysitter]{seq: t.next(), v: v}
		return nil
	})
}

func (r babysitterRepo) Get(ctx context.Context, id uuid.UUID) (*models.Babysitter, error) {
	var out *models.Babysitter
	r.s.read(func(t *tables) {
		if b, ok := t.babysitters[id]; ok {
			v := t.populateBabysitter(b.v)
			out = &v
		}
	})
	if out == nil {
		return nil, notFound("get babysitter")
	}
	return out, nil
}

// GetForUpdate is Get: transactions already hold the store's write lock.
func (r babysitterRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Babysitter, error) {
	return r.Get(ctx, id)
}

func (r babysitterRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Babysitter, error) {
	var out *models.Babysitter
	r.s.read(func(t *tables) {
		for _, b := range t.babysitters {
			if b.v.UserID == userID {
				v := t.populateBabysitter(b.v)
				out = &v
				return
			}
		}
	})
	if out == nil {
		return nil, notFound("get babysitter by user")
	}
	return out, nil
}

func (r babysitterRepo) List(ctx context.Context, f store.BabysitterFilter) ([]models.Babysitter, error) {
	var out []models.Babysitter
	r.s.read(func(t *tables) {
		out = collect(t.babysitters, func(b models.Babysitter) bool {
			return babysitterMatches(b, f)
		}, func(a, b models.Babysitter) int {
			return cmpTime(a.CreatedAt, b.CreatedAt)
		}, false)
		for i := range out {
			out[i] = t.populateBabysitter(out[i])
		}
	})
	return out, nil
}

func (r babysitterRepo) Count(ctx context.Context, f store.BabysitterFilter) (int64, error) {
	var n int64
	r.s.read(func(t *tables) {
		for _, b := range t.babysitters {
			if babysitterMatches(b.v, f) {
				n++
			}
		}
	})
	return n, nil
}

func (r babysitterRepo) Update(ctx context.Context, b *models.Babysitter) error {
	return r.s.write(func(t *tables, now time.Time) error {
		existing, ok := t.babysitters[b.ID]
		if !ok {
			return notFound("update babysitter")
		}
		_ = b.BeforeSave(nil)
		stamp(&b.CreatedAt, &b.UpdatedAt, now)
		v := *b
		v.User = nil
		t.babysitters[b.ID] = row[models.Babysitter]{seq: existing.seq, v: v}
		return nil
	})
}

func (r babysitterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(t *tables, now time.Time) error {
		if _, ok := t.babysitters[id]; !ok {
			return notFound("delete babysitter")
		}
		delete(t.babysitters, id)
		return nil
	})
}
