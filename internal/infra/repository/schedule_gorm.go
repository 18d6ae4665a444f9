package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type scheduleGormRepository struct {
	db *gorm.DB
}

func (r *scheduleGormRepository) scoped(ctx context.Context, f store.ScheduleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Schedule{})
	if f.ParentID != nil {
		q = q.Where("parent_id = ?", *f.ParentID)
	}
	if f.BabysitterID != nil {
		q = q.Where("babysitter_id = ?", *f.BabysitterID)
	}
	if f.ChildID != nil {
		q = q.Where("child_id = ?", *f.ChildID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.StartsOn != nil {
		q = q.Where("start_date = ?", *f.StartsOn)
	}
	if f.EndsBefore != nil {
		q = q.Where("end_date < ?", *f.EndsBefore)
	}
	if f.From != nil {
		q = q.Where("end_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_date <= ?", *f.To)
	}
	return q
}

func (r *scheduleGormRepository) Create(ctx context.Context, s *models.Schedule) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error, "create schedule")
}

func (r *scheduleGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	var s models.Schedule
	if err := r.db.WithContext(ctx).
		Preload("Child").
		Preload("Babysitter").
		Preload("Parent").
		First(&s, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get schedule")
	}
	return &s, nil
}

func (r *scheduleGormRepository) List(ctx context.Context, f store.ScheduleFilter) ([]models.Schedule, error) {
	var out []models.Schedule
	if err := r.scoped(ctx, f).
		Preload("Child").
		Preload("Babysitter").
		Preload("Parent").
		Order("start_date ASC, created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, wrap(err, "list schedules")
	}
	return out, nil
}

func (r *scheduleGormRepository) Count(ctx context.Context, f store.ScheduleFilter) (int64, error) {
	var n int64
	if err := r.scoped(ctx, f).Count(&n).Error; err != nil {
		return 0, wrap(err, "count schedules")
	}
	return n, nil
}

func (r *scheduleGormRepository) Update(ctx context.Context, s *models.Schedule) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error, "update schedule")
}

func (r *scheduleGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Schedule{}, id, "delete schedule")
}
