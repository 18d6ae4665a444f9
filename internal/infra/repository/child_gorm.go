package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type childGormRepository struct {
	db *gorm.DB
}

func (r *childGormRepository) scoped(ctx context.Context, f store.ChildFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Child{})
	if f.ParentID != nil {
		q = q.Where("parent_id = ?", *f.ParentID)
	}
	if f.BabysitterID != nil {
		q = q.Where("id IN (?)",
			r.db.Model(&models.Schedule{}).Select("child_id").Where("babysitter_id = ?", *f.BabysitterID),
		)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	return q
}

func (r *childGormRepository) Create(ctx context.Context, c *models.Child) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error, "create child")
}

func (r *childGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.Child, error) {
	var c models.Child
	if err := r.db.WithContext(ctx).Preload("Parent").First(&c, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get child")
	}
	return &c, nil
}

func (r *childGormRepository) List(ctx context.Context, f store.ChildFilter) ([]models.Child, error) {
	var children []models.Child
	if err := r.scoped(ctx, f).
		Preload("Parent").
		Order("created_at ASC, id ASC").
		Find(&children).Error; err != nil {
		return nil, wrap(err, "list children")
	}
	return children, nil
}

func (r *childGormRepository) Count(ctx context.Context, f store.ChildFilter) (int64, error) {
	var n int64
	if err := r.scoped(ctx, f).Count(&n).Error; err != nil {
		return 0, wrap(err, "count children")
	}
	return n, nil
}

func (r *childGormRepository) Update(ctx context.Context, c *models.Child) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error, "update child")
}

func (r *childGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Child{}, id, "delete child")
}
