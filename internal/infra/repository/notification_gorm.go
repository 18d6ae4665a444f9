package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type notificationGormRepository struct {
	db *gorm.DB
}

func (r *notificationGormRepository) scoped(ctx context.Context, f store.NotificationFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Notification{})
	if f.RecipientID != nil {
		q = q.Where("recipient_id = ?", *f.RecipientID)
	}
	if f.SenderID != nil {
		q = q.Where("sender_id = ?", *f.SenderID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	return q
}

func (r *notificationGormRepository) Create(ctx context.Context, n *models.Notification) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(n).Error, "create notification")
}

func (r *notificationGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		First(&n, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get notification")
	}
	return &n, nil
}

func (r *notificationGormRepository) List(ctx context.Context, f store.NotificationFilter) ([]models.Notification, error) {
	var out []models.Notification
	if err := r.scoped(ctx, f).
		Preload("Sender").
		Preload("Recipient").
		Order("created_at DESC, id ASC").
		Find(&out).Error; err != nil {
		return nil, wrap(err, "list notifications")
	}
	return out, nil
}

func (r *notificationGormRepository) Count(ctx context.Context, f store.NotificationFilter) (int64, error) {
	var n int64
	if err := r.scoped(ctx, f).Count(&n).Error; err != nil {
		return 0, wrap(err, "count notifications")
	}
	return n, nil
}

func (r *notificationGormRepository) Update(ctx context.Context, n *models.Notification) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Save(n).Error, "update notification")
}

func (r *notificationGormRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND status = ?", recipientID, models.NotificationUnread).
		Updates(map[string]any{
			"status":     models.NotificationRead,
			"read_at":    at,
			"updated_at": at,
		})
	if res.Error != nil {
		return 0, wrap(res.Error, "mark notifications read")
	}
	return res.RowsAffected, nil
}

func (r *notificationGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Notification{}, id, "delete notification")
}

type preferenceGormRepository struct {
	db *gorm.DB
}

func (r *preferenceGormRepository) Get(ctx context.Context, userID uuid.UUID) (*models.NotificationPreference, error) {
	var p models.NotificationPreference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, wrap(err, "get notification preferences")
	}
	return &p, nil
}

func (r *preferenceGormRepository) Upsert(ctx context.Context, p *models.NotificationPreference) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email_enabled", "muted_types", "updated_at"}),
		}).
		Create(p).Error
	return wrap(err, "upsert notification preferences")
}
