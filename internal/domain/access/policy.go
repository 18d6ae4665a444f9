// Package access holds the authorization rules shared by every resource:
// who the caller is, what they may touch, and how their lists are scoped.
package access

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

// Principal is the authenticated caller.
type Principal struct {
	ID   uuid.UUID
	Role models.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

func (p Principal) IsBabysitter() bool {
	return p.Role == models.RoleBabysitter
}

func (p Principal) IsParent() bool {
	return p.Role == models.RoleParent
}

// Owns reports whether the caller is admin or one of the given owners.
func (p Principal) Owns(owners ...uuid.UUID) bool {
	if p.IsAdmin() {
		return true
	}
	for _, o := range owners {
		if o != uuid.Nil && o == p.ID {
			return true
		}
	}
	return false
}

// OwnsRef is Owns for optional references.
func (p Principal) OwnsRef(owners ...*uuid.UUID) bool {
	ids := make([]uuid.UUID, 0, len(owners))
	for _, o := range owners {
		if o != nil {
			ids = append(ids, *o)
		}
	}
	return p.Owns(ids...)
}

func ValidRole(r models.Role) bool {
	switch r {
	case models.RoleAdmin, models.RoleBabysitter, models.RoleParent:
		return true
	}
	return false
}

// SelfRegistrable lists the roles a visitor may pick at sign-up.
func SelfRegistrable(r models.Role) bool {
	return r == models.RoleParent || r == models.RoleBabysitter
}

// --------------------------------------------------
// List scopes
// --------------------------------------------------

func (p Principal) ChildScope() store.ChildFilter {
	switch {
	case p.IsAdmin():
		return store.ChildFilter{}
	case p.IsBabysitter():
		return store.ChildFilter{BabysitterID: &p.ID}
	default:
		return store.ChildFilter{ParentID: &p.ID}
	}
}

func (p Principal) AttendanceScope() store.AttendanceFilter {
	switch {
	case p.IsAdmin():
		return store.AttendanceFilter{}
	case p.IsBabysitter():
		return store.AttendanceFilter{BabysitterID: &p.ID}
	default:
		return store.AttendanceFilter{ParentID: &p.ID}
	}
}

func (p Principal) ScheduleScope() store.ScheduleFilter {
	switch {
	case p.IsAdmin():
		return store.ScheduleFilter{}
	case p.IsBabysitter():
		return store.ScheduleFilter{BabysitterID: &p.ID}
	default:
		return store.ScheduleFilter{ParentID: &p.ID}
	}
}

func (p Principal) FinanceScope() store.FinanceFilter {
	switch {
	case p.IsAdmin():
		return store.FinanceFilter{}
	case p.IsBabysitter():
		return store.FinanceFilter{BabysitterID: &p.ID}
	default:
		return store.FinanceFilter{ParentID: &p.ID}
	}
}

func (p Principal) NotificationScope() store.NotificationFilter {
	if p.IsAdmin() {
		return store.NotificationFilter{}
	}
	return store.NotificationFilter{RecipientID: &p.ID}
}
