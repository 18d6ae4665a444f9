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

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, u *models.User) error {
	return r.s.write(func(t *tables, now time.Time) error {
		_ = u.BeforeCreate(nil)
		if _, ok := t.users[u.ID]; ok {
			return errors.Wrap(ErrDuplicate, "create user")
		}
		for _, existing := range t.users {
			if strings.EqualFold(existing.v.Email, u.Email) {
				return errors.Wrap(ErrDuplicate, "create user")
			}
		}
		stamp(&u.CreatedAt, &u.UpdatedAt, now)
		t.users[u.ID] = row[models.User]{seq: t.next(), v: *u}
		return nil
	})
}

func (r userRepo) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var out *models.User
	r.s.read(func(t *tables) { out = t.userRef(id) })
	if out == nil {
		return nil, notFound("get user")
	}
	return out, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var out *models.User
	r.s.read(func(t *tables) {
		for _, u := range t.users {
			if strings.ToLower(u.v.Email) == email {
				v := u.v
				out = &v
				return
			}
		}
	})
	if out == nil {
		return nil, notFound("get user by email")
	}
	return out, nil
}

func (r userRepo) List(ctx context.Context, f store.UserFilter) ([]models.User, error) {
	var out []models.User
	r.s.read(func(t *tables) {
		out = collect(t.users, func(u models.User) bool {
			return f.Role == "" || u.Role == f.Role
		}, func(a, b models.User) int {
			return cmpTime(a.CreatedAt, b.CreatedAt)
		}, false)
	})
	return out, nil
}

func (r userRepo) Update(ctx context.Context, u *models.User) error {
	return r.s.write(func(t *tables, now time.Time) error {
		existing, ok := t.users[u.ID]
		if !ok {
			return notFound("update user")
		}
		for id, other := range t.users {
			if id != u.ID && strings.EqualFold(other.v.Email, u.Email) {
				return errors.Wrap(ErrDuplicate, "update user")
			}
		}
		stamp(&u.CreatedAt, &u.UpdatedAt, now)
		t.users[u.ID] = row[models.User]{seq: existing.seq, v: *u}
		return nil
	})
}

func (r userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(t *tables, now time.Time) error {
		if _, ok := t.users[id]; !ok {
			return notFound("delete user")
		}
		delete(t.users, id)
		t.cascadeUser(id)
		return nil
	})
}

// cascadeUser mirrors the foreign keys declared on the gorm models.
func (t *tables) cascadeUser(id uuid.UUID) {
	for cid, c := range t.children {
		if c.v.ParentID == id {
			delete(t.children, cid)
			t.cascadeChild(cid)
		}
	}
	for bid, b := range t.babysitters {
		if b.v.UserID == id {
			delete(t.babysitters, bid)
		}
	}
	for sid, s := range t.schedules {
		if s.v.ParentID == id || s.v.BabysitterID == id {
			delete(t.schedules, sid)
		}
	}
	for aid, a := range t.attendance {
		if a.v.BabysitterID == id {
			delete(t.attendance, aid)
		}
	}
	for fid, f := range t.finance {
		switch {
		case f.v.ParentID == id:
			delete(t.finance, fid)
		case eqRef(f.v.BabysitterID, id):
			f.v.BabysitterID = nil
			t.finance[fid] = f
		}
	}
	for nid, n := range t.notifications {
		switch {
		case n.v.RecipientID == id:
			delete(t.notifications, nid)
		case eqRef(n.v.SenderID, id):
			n.v.SenderID = nil
			t.notifications[nid] = n
		}
	}
}
