package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/daycare-manager/internal/auth"
	"github.com/BruksfildServices01/daycare-manager/internal/config"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsDevelopment() {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Child{},
		&models.Babysitter{},
		&models.Attendance{},
		&models.Schedule{},
		&models.Finance{},
		&models.Notification{},
		&models.NotificationPreference{},
		&models.ActivityLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SeedAdmin creates the bootstrap admin account when no user holds email.
func SeedAdmin(ctx context.Context, s store.Store, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	_, err := s.Users().GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !store.IsNotFound(err) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		FirstName:    "Admin",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.Users().Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("email", email).Msg("admin account created")
	return nil
}
