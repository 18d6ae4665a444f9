package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

type userGormRepository struct {
	db *gorm.DB
}

func (r *userGormRepository) Create(ctx context.Context, u *models.User) error {
	return wrap(r.db.WithContext(ctx).Create(u).Error, "create user")
}

func (r *userGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get user")
	}
	return &u, nil
}

func (r *userGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		return nil, wrap(err, "get user by email")
	}
	return &u, nil
}

func (r *userGormRepository) List(ctx context.Context, f store.UserFilter) ([]models.User, error) {
	q := r.db.WithContext(ctx)
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}

	var users []models.User
	if err := q.Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, wrap(err, "list users")
	}
	return users, nil
}

func (r *userGormRepository) Update(ctx context.Context, u *models.User) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error, "update user")
}

func (r *userGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.User{}, id, "delete user")
}
