package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

// GormStore is the postgres-backed store.Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() store.UserRepository {
	return &userGormRepository{db: s.db}
}

func (s *GormStore) Children() store.ChildRepository {
	return &childGormRepository{db: s.db}
}

func (s *GormStore) Babysitters() store.BabysitterRepository {
	return &babysitterGormRepository{db: s.db}
}

func (s *GormStore) Attendance() store.AttendanceRepository {
	return &attendanceGormRepository{db: s.db}
}

func (s *GormStore) Schedules() store.ScheduleRepository {
	return &scheduleGormRepository{db: s.db}
}

func (s *GormStore) Finance() store.FinanceRepository {
	return &financeGormRepository{db: s.db}
}

func (s *GormStore) Notifications() store.NotificationRepository {
	return &notificationGormRepository{db: s.db}
}

func (s *GormStore) Preferences() store.PreferenceRepository {
	return &preferenceGormRepository{db: s.db}
}

func (s *GormStore) ActivityLogs() store.ActivityLogRepository {
	return &activityLogGormRepository{db: s.db}
}

func (s *GormStore) Tx(ctx context.Context, fn func(tx store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// wrap maps gorm's not-found sentinel to store.ErrNotFound.
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(store.ErrNotFound, msg)
	}
	return errors.Wrap(err, msg)
}

// deleteByID deletes one row and reports store.ErrNotFound when nothing matched.
func deleteByID(db *gorm.DB, model any, id any, msg string) error {
	res := db.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return errors.Wrap(res.Error, msg)
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(store.ErrNotFound, msg)
	}
	return nil
}

// Compile-time check
var _ store.Store = (*GormStore)(nil)
