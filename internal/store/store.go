// Package store declares the persistence contracts used by handlers and use
// cases. The postgres implementation lives in infra/repository and the
// in-process one in infra/memory.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
)

var ErrNotFound = errors.New("record not found")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

type Store interface {
	Users() UserRepository
	Children() ChildRepository
	Babysitters() BabysitterRepository
	Attendance() AttendanceRepository
	Schedules() ScheduleRepository
	Finance() FinanceRepository
	Notifications() NotificationRepository
	Preferences() PreferenceRepository
	ActivityLogs() ActivityLogRepository

	// Tx runs fn against a Store bound to a single transaction. A non-nil
	// error from fn rolls back every write made through that Store.
	Tx(ctx context.Context, fn func(tx Store) error) error
}

// --------------------------------------------------
// Filters
// --------------------------------------------------

type UserFilter struct {
	Role models.Role
}

type ChildFilter struct {
	ParentID *uuid.UUID
	// BabysitterID restricts to children that appear on a schedule of that babysitter.
	BabysitterID *uuid.UUID
	Active       *bool
}

type BabysitterFilter struct {
	Available *bool
	Language  string
}

type AttendanceFilter struct {
	// ParentID restricts to attendance of children owned by that parent.
	ParentID     *uuid.UUID
	BabysitterID *uuid.UUID
	ChildID      *uuid.UUID
	Status       models.AttendanceStatus
	From         *models.Date
	To           *models.Date
}

type ScheduleFilter struct {
	ParentID     *uuid.UUID
	BabysitterID *uuid.UUID
	ChildID      *uuid.UUID
	Status       models.ScheduleStatus
	StartsOn     *models.Date
	EndsBefore   *models.Date
	From         *models.Date
	To           *models.Date
}

type FinanceFilter struct {
	ParentID      *uuid.UUID
	BabysitterID  *uuid.UUID
	Type          models.FinanceType
	Status        models.FinanceStatus
	PaymentMethod models.PaymentMethod
	From          *models.Date
	To            *models.Date
}

type NotificationFilter struct {
	RecipientID *uuid.UUID
	SenderID    *uuid.UUID
	Status      models.NotificationStatus
	Type        models.NotificationType
}

type ActivityLogFilter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// --------------------------------------------------
// Repositories
// --------------------------------------------------

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, f UserFilter) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ChildRepository interface {
	Create(ctx context.Context, c *models.Child) error
	Get(ctx context.Context, id uuid.UUID) (*models.Child, error)
	List(ctx context.Context, f ChildFilter) ([]models.Child, error)
	Count(ctx context.Context, f ChildFilter) (int64, error)
	Update(ctx context.Context, c *models.Child) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BabysitterRepository interface {
	Create(ctx context.Context, b *models.Babysitter) error
	Get(ctx context.Context, id uuid.UUID) (*models.Babysitter, error)
	// GetForUpdate locks the row until the surrounding Tx ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Babysitter, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Babysitter, error)
	List(ctx context.Context, f BabysitterFilter) ([]models.Babysitter, error)
	Count(ctx context.Context, f BabysitterFilter) (int64, error)
	Update(ctx context.Context, b *models.Babysitter) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AttendanceRepository interface {
	Create(ctx context.Context, a *models.Attendance) error
	Get(ctx context.Context, id uuid.UUID) (*models.Attendance, error)
	List(ctx context.Context, f AttendanceFilter) ([]models.Attendance, error)
	Update(ctx context.Context, a *models.Attendance) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ScheduleRepository interface {
	Create(ctx context.Context, s *models.Schedule) error
	Get(ctx context.Context, id uuid.UUID) (*models.Schedule, error)
	List(ctx context.Context, f ScheduleFilter) ([]models.Schedule, error)
	Count(ctx context.Context, f ScheduleFilter) (int64, error)
	Update(ctx context.Context, s *models.Schedule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type FinanceRepository interface {
	Create(ctx context.Context, f *models.Finance) error
	Get(ctx context.Context, id uuid.UUID) (*models.Finance, error)
	List(ctx context.Context, f FinanceFilter) ([]models.Finance, error)
	Sum(ctx context.Context, f FinanceFilter) (float64, error)
	Update(ctx context.Context, f *models.Finance) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	Get(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	List(ctx context.Context, f NotificationFilter) ([]models.Notification, error)
	Count(ctx context.Context, f NotificationFilter) (int64, error)
	Update(ctx context.Context, n *models.Notification) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PreferenceRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.NotificationPreference, error)
	Upsert(ctx context.Context, p *models.NotificationPreference) error
}

type ActivityLogRepository interface {
	Create(ctx context.Context, l *models.ActivityLog) error
	List(ctx context.Context, f ActivityLogFilter) ([]models.ActivityLog, int64, error)
}
