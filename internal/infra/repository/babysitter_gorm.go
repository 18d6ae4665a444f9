package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type babysitterGormRepository struct {
	db *gorm.DB
}

func (r *babysitterGormRepository) scoped(ctx context.Context, f store.BabysitterFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Babysitter{})
	if f.Available != nil {
		q = q.Where("is_available = ?", *f.Available)
	}
	if f.Language != "" {
		lang, _ := json.Marshal([]string{f.Language})
		q = q.Where("languages::jsonb @> ?::jsonb", string(lang))
	}
	return q
}

func (r *babysitterGormRepository) Create(ctx context.Context, b *models.Babysitter) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error, "create babysitter")
}

func (r *babysitterGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.Babysitter, error) {
	var b models.Babysitter
	if err := r.db.WithContext(ctx).Preload("User").First(&b, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get babysitter")
	}
	return &b, nil
}

func (r *babysitterGormRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Babysitter, error) {
	var b models.Babysitter
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "lock babysitter")
	}
	return &b, nil
}

func (r *babysitterGormRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Babysitter, error) {
	var b models.Babysitter
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&b).Error; err != nil {
		return nil, wrap(err, "get babysitter by user")
	}
	return &b, nil
}

func (r *babysitterGormRepository) List(ctx context.Context, f store.BabysitterFilter) ([]models.Babysitter, error) {
	var out []models.Babysitter
	if err := r.scoped(ctx, f).
		Preload("User").
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, wrap(err, "list babysitters")
	}
	return out, nil
}

func (r *babysitterGormRepository) Count(ctx context.Context, f store.BabysitterFilter) (int64, error) {
	var n int64
	if err := r.scoped(ctx, f).Count(&n).Error; err != nil {
		return 0, wrap(err, "count babysitters")
	}
	return n, nil
}

func (r *babysitterGormRepository) Update(ctx context.Context, b *models.Babysitter) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error, "update babysitter")
}

func (r *babysitterGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Babysitter{}, id, "delete babysitter")
}
