package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type financeRepo struct{ s *Store }

func financeMatches(r models.Finance, f store.FinanceFilter) bool {
	if f.ParentID != nil && r.ParentID != *f.ParentID {
		return false
	}
	if f.BabysitterID != nil && !eqRef(r.BabysitterID, *f.BabysitterID) {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.PaymentMethod != "" && r.PaymentMethod != f.PaymentMethod {
		return false
	}
	return dateIn(r.Date, f.From, f.To)
}

func (t *tables) populateFinance(r models.Finance) models.Finance {
	r.Parent = t.userRef(r.ParentID)
	r.Babysitter = t.userRefPtr(r.BabysitterID)
	r.Child = nil
	if r.ChildID != nil {
		r.Child = t.childRef(*r.ChildID)
	}
	return r
}

func stripFinance(r models.Finance) models.Finance {
	r.Parent = nil
	r.Babysitter = nil
	r.Child = nil
	return r
}

func (r financeRepo) Create(ctx context.Context, f *models.Finance) error {
	return r.s.write(func(t *tables, now time.Time) error {
		_ = f.BeforeCreate(nil)
		if _, ok := t.finance[f.ID]; ok {
			return errors.Wrap(ErrDuplicate, "create finance record")
		}
		if f.Status == "" {
			f.Status = models.FinancePending
		}
		stamp(&f.CreatedAt, &f.UpdatedAt, now)
		t.finance[f.ID] = row[models.Finance]{seq: t.next(), v: stripFinance(*f)}
		return nil
	})
}

func (r financeRepo) Get(ctx context.Context, id uuid.UUID) (*models.Finance, error) {
	var out *models.Finance
	r.s.read(func(t *tables) {
		if f, ok := t.finance[id]; ok {
			v := t.populateFinance(f.v)
			out = &v
		}
	})
	if out == nil {
		return nil, notFound("get finance record")
	}
	return out, nil
}

func (r financeRepo) List(ctx context.Context, f store.FinanceFilter) ([]models.Finance, error) {
	var out []models.Finance
	r.s.read(func(t *tables) {
		out = collect(t.finance, func(rec models.Finance) bool {
			return financeMatches(rec, f)
		}, func(a, b models.Finance) int {
			if c := cmpTime(b.Date.Time, a.Date.Time); c != 0 {
				return c
			}
			return cmpTime(b.CreatedAt, a.CreatedAt)
		}, true)
		for i := range out {
			out[i] = t.populateFinance(out[i])
		}
	})
	return out, nil
}

func (r financeRepo) Sum(ctx context.Context, f store.FinanceFilter) (float64, error) {
	var total float64
	r.s.read(func(t *tables) {
		for _, rec := range t.finance {
			if financeMatches(rec.v, f) {
				total += rec.v.Amount
			}
		}
	})
	return total, nil
}

func (r financeRepo) Update(ctx context.Context, f *models.Finance) error {
	return r.s.write(func(t *tables, now time.Time) error {
		existing, ok := t.finance[f.ID]
		if !ok {
			return notFound("update finance record")
		}
		stamp(&f.CreatedAt, &f.UpdatedAt, now)
		t.finance[f.ID] = row[models.Finance]{seq: existing.seq, v: stripFinance(*f)}
		return nil
	})
}

func (r financeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(t *tables, now time.Time) error {
		if _, ok := t.finance[id]; !ok {
			return notFound("delete finance record")
		}
		delete(t.finance, id)
		return nil
	})
}
