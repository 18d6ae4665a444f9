package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/auth"
	"github.com/BruksfildServices01/daycare-manager/internal/cache"
	"github.com/BruksfildServices01/daycare-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/daycare-manager/internal/db"
	"github.com/BruksfildServices01/daycare-manager/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/daycare-manager/internal/infra/repository"
	"github.com/BruksfildServices01/daycare-manager/internal/jobs"
	"github.com/BruksfildServices01/daycare-manager/internal/logger"
	"github.com/BruksfildServices01/daycare-manager/internal/mail"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/payments"
	"github.com/BruksfildServices01/daycare-manager/internal/routes"
	"github.com/BruksfildServices01/daycare-manager/internal/storage"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
	"github.com/BruksfildServices01/daycare-manager/internal/timezone"
	ucSchedule "github.com/BruksfildServices01/daycare-manager/internal/usecase/schedule"
	"github.com/BruksfildServices01/daycare-manager/internal/validators"
)

const mailQueueSize = 100

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := timezone.Set(cfg.Timezone); err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
	}

	if err := validators.Register(); err != nil {
		log.Fatal().Err(err).Msg("register validators")
	}

	ctx := context.Background()

	// ======================================================
	// STORAGE
	// ======================================================
	var st store.Store
	if cfg.DBDriver == "memory" {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		st = memory.New()
	} else {
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("connect database")
		}
		st = infraRepo.NewGormStore(db)
	}

	if err := dbpkg.SeedAdmin(ctx, st, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}

	// ======================================================
	// OPTIONAL INTEGRATIONS
	// ======================================================
	var statsCache cache.Cache = cache.Nop{}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, stats cache disabled")
		} else {
			defer rc.Close()
			statsCache = rc
		}
	}

	var uploader storage.Uploader = storage.Disabled{}
	if cfg.S3Bucket != "" {
		uploader = storage.NewS3(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	}

	var sender mail.Sender = mail.NopSender{}
	if cfg.SMTPHost != "" {
		sender = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	}
	mailQueue := mail.NewQueue(sender, mailQueueSize)

	var gateway payments.Gateway = payments.Disabled{}
	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken, cfg.MercadoPagoCurrency, cfg.MercadoPagoWebhookURL)
		if err != nil {
			log.Warn().Err(err).Msg("mercado pago unavailable, checkout disabled")
		} else {
			gateway = mp
		}
	}

	// ======================================================
	// SINGLETONS
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(st.ActivityLogs()))
	notifier := notify.New(st, mailQueue)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	var scheduler *jobs.Scheduler
	if cfg.CronEnabled {
		scheduler = jobs.New(
			ucSchedule.NewCompleteFinished(st, notifier, auditDispatcher),
			ucSchedule.NewReminders(st, notifier),
		)
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("start cron")
		}
	}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Store:    st,
		Tokens:   tokens,
		Audit:    auditDispatcher,
		Notifier: notifier,
		Cache:    statsCache,
		Uploader: uploader,
		Gateway:  gateway,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Environment).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	if scheduler != nil {
		scheduler.Stop()
	}
	auditDispatcher.Close()
	mailQueue.Close()

	log.Info().Msg("server exited")
}
