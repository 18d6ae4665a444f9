package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type financeGormRepository struct {
	db *gorm.DB
}

func (r *financeGormRepository) scoped(ctx context.Context, f store.FinanceFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Finance{})
	if f.ParentID != nil {
		q = q.Where("parent_id = ?", *f.ParentID)
	}
	if f.BabysitterID != nil {
		q = q.Where("babysitter_id = ?", *f.BabysitterID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentMethod != "" {
		q = q.Where("payment_method = ?", f.PaymentMethod)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	return q
}

func (r *financeGormRepository) Create(ctx context.Context, f *models.Finance) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error, "create finance record")
}

func (r *financeGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.Finance, error) {
	var f models.Finance
	if err := r.db.WithContext(ctx).
		Preload("Parent").
		Preload("Babysitter").
		Preload("Child").
		First(&f, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get finance record")
	}
	return &f, nil
}

func (r *financeGormRepository) List(ctx context.Context, f store.FinanceFilter) ([]models.Finance, error) {
	var out []models.Finance
	if err := r.scoped(ctx, f).
		Preload("Parent").
		Preload("Babysitter").
		Preload("Child").
		Order("date DESC, created_at DESC, id ASC").
		Find(&out).Error; err != nil {
		return nil, wrap(err, "list finance records")
	}
	return out, nil
}

func (r *financeGormRepository) Sum(ctx context.Context, f store.FinanceFilter) (float64, error) {
	var total float64
	if err := r.scoped(ctx, f).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, wrap(err, "sum finance records")
	}
	return total, nil
}

func (r *financeGormRepository) Update(ctx context.Context, f *models.Finance) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Save(f).Error, "update finance record")
}

func (r *financeGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Finance{}, id, "delete finance record")
}
