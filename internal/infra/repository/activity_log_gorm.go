package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type activityLogGormRepository struct {
	db *gorm.DB
}

func (r *activityLogGormRepository) Create(ctx context.Context, l *models.ActivityLog) error {
	return wrap(r.db.WithContext(ctx).Create(l).Error, "create activity log")
}

func (r *activityLogGormRepository) List(ctx context.Context, f store.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.ActivityLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrap(err, "count activity logs")
	}

	var logs []models.ActivityLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, wrap(err, "list activity logs")
	}
	return logs, total, nil
}
