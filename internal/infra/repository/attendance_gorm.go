package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type attendanceGormRepository struct {
	db *gorm.DB
}

func (r *attendanceGormRepository) Create(ctx context.Context, a *models.Attendance) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error, "create attendance")
}

func (r *attendanceGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.Attendance, error) {
	var a models.Attendance
	if err := r.db.WithContext(ctx).
		Preload("Child").
		Preload("Babysitter").
		First(&a, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get attendance")
	}
	return &a, nil
}

func (r *attendanceGormRepository) List(ctx context.Context, f store.AttendanceFilter) ([]models.Attendance, error) {
	q := r.db.WithContext(ctx).Model(&models.Attendance{})

	if f.ParentID != nil {
		q = q.Where("child_id IN (?)",
			r.db.Model(&models.Child{}).Select("id").Where("parent_id = ?", *f.ParentID),
		)
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
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}

	var out []models.Attendance
	if err := q.
		Preload("Child").
		Preload("Babysitter").
		Order("date DESC, created_at DESC, id ASC").
		Find(&out).Error; err != nil {
		return nil, wrap(err, "list attendance")
	}
	return out, nil
}

func (r *attendanceGormRepository) Update(ctx context.Context, a *models.Attendance) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error, "update attendance")
}

func (r *attendanceGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Attendance{}, id, "delete attendance")
}
