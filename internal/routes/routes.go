package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-manager/internal/audit"
	"github.com/BruksfildServices01/daycare-manager/internal/auth"
	"github.com/BruksfildServices01/daycare-manager/internal/cache"
	"github.com/BruksfildServices01/daycare-manager/internal/config"
	"github.com/BruksfildServices01/daycare-manager/internal/handlers"
	"github.com/BruksfildServices01/daycare-manager/internal/middleware"
	"github.com/BruksfildServices01/daycare-manager/internal/models"
	"github.com/BruksfildServices01/daycare-manager/internal/notify"
	"github.com/BruksfildServices01/daycare-manager/internal/payments"
	"github.com/BruksfildServices01/daycare-manager/internal/storage"
	"github.com/BruksfildServices01/daycare-manager/internal/store"
	ucChild "github.com/BruksfildServices01/daycare-manager/internal/usecase/child"
	ucFinance "github.com/BruksfildServices01/daycare-manager/internal/usecase/finance"
	ucSchedule "github.com/BruksfildServices01/daycare-manager/internal/usecase/schedule"
	"github.com/BruksfildServices01/daycare-manager/internal/validators"
)

// Deps are the singletons built by main and shared by every handler.
type Deps struct {
	Config   *config.Config
	Store    store.Store
	Tokens   *auth.TokenManager
	Audit    *audit.Dispatcher
	Notifier *notify.Notifier
	Cache    cache.Cache
	Uploader storage.Uploader
	Gateway  payments.Gateway
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.ClientURL))
	r.Use(middleware.ErrorHandler())

	r.NoRoute(middleware.NotFound())

	// ======================================================
	// USE CASES
	// ======================================================
	createScheduleUC := ucSchedule.NewCreateSchedule(
		d.Store,
		d.Notifier,
		d.Audit,
	)

	changeScheduleStatusUC := ucSchedule.NewChangeStatus(
		d.Store,
		d.Notifier,
		d.Audit,
	)

	uploadPhotoUC := ucChild.NewUploadPhoto(
		d.Store,
		d.Uploader,
		d.Audit,
	)

	checkoutUC := ucFinance.NewCheckout(
		d.Store,
		d.Gateway,
		d.Audit,
	)

	webhookUC := ucFinance.NewWebhook(
		d.Store,
		d.Gateway,
		d.Notifier,
		d.Audit,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	var emailDomains validators.DomainLookup
	if cfg.EmailDomainCheck {
		emailDomains = validators.ResolveDomain
	}

	authHandler := handlers.NewAuthHandler(d.Store, d.Tokens, d.Audit, emailDomains)
	meHandler := handlers.NewMeHandler(d.Store, d.Audit)
	userHandler := handlers.NewUserHandler(d.Store, d.Audit)

	childHandler := handlers.NewChildHandler(d.Store, d.Audit, uploadPhotoUC)
	babysitterHandler := handlers.NewBabysitterHandler(d.Store, d.Audit, d.Notifier)
	attendanceHandler := handlers.NewAttendanceHandler(d.Store, d.Audit, d.Notifier)

	scheduleHandler := handlers.NewScheduleHandler(
		d.Store,
		d.Audit,
		createScheduleUC,
		changeScheduleStatusUC,
	)

	financeHandler := handlers.NewFinanceHandler(
		d.Store,
		d.Audit,
		d.Uploader,
		checkoutUC,
		webhookUC,
	)

	notificationHandler := handlers.NewNotificationHandler(d.Store, d.Audit, d.Notifier)
	dashboardHandler := handlers.NewDashboardHandler(d.Store, d.Cache, cfg.StatsCacheTTL)
	reportHandler := handlers.NewReportHandler(d.Store)
	activityLogHandler := handlers.NewActivityLogHandler(d.Store)

	adminOnly := middleware.RoleMiddleware(models.RoleAdmin)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH (public, rate limited)
		// ------------------------------
		authAPI := api.Group("/auth")
		authAPI.Use(middleware.RateLimiter(cfg.AuthRateWindow, cfg.AuthRateLimit))
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
			authAPI.POST("/refresh-token", authHandler.Refresh)
			authAPI.POST("/logout", authHandler.Logout)
		}

		// ------------------------------
		// PAYMENT WEBHOOKS (public)
		// ------------------------------
		api.POST("/finance/webhooks/mercadopago", financeHandler.MercadoPagoWebhook)
		api.POST("/finances/webhooks/mercadopago", financeHandler.MercadoPagoWebhook)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me", meHandler.UpdateMe)
			secured.PUT("/me/password", meHandler.ChangePassword)
			secured.GET("/me/navigation", meHandler.Navigation)

			// ------------------------------
			// USERS
			// ------------------------------
			users := secured.Group("/users")
			{
				users.GET("", adminOnly, userHandler.List)
				users.POST("", adminOnly, userHandler.Create)
				users.GET("/:id", userHandler.Get)
				users.PUT("/:id", userHandler.Update)
				users.DELETE("/:id", adminOnly, userHandler.Delete)
			}

			// ------------------------------
			// CHILDREN
			// ------------------------------
			children := secured.Group("/children")
			{
				children.GET("", childHandler.List)
				children.POST("", childHandler.Create)
				children.GET("/:id", childHandler.Get)
				children.PUT("/:id", childHandler.Update)
				children.DELETE("/:id", childHandler.Delete)
				children.GET("/:id/attendance", childHandler.Attendance)
				children.GET("/:id/schedule", childHandler.Schedule)
				children.POST("/:id/photo", childHandler.UploadPhoto)
			}

			// ------------------------------
			// BABYSITTERS
			// ------------------------------
			babysitters := secured.Group("/babysitters")
			{
				babysitters.GET("", babysitterHandler.List)
				babysitters.POST("", adminOnly, babysitterHandler.Create)
				babysitters.GET("/:id", babysitterHandler.Get)
				babysitters.PUT("/:id", babysitterHandler.Update)
				babysitters.DELETE("/:id", adminOnly, babysitterHandler.Delete)
				babysitters.POST("/:id/reviews", middleware.RoleMiddleware(models.RoleParent), babysitterHandler.AddReview)
				babysitters.GET("/:id/schedule", babysitterHandler.Schedule)
				babysitters.GET("/:id/payments", babysitterHandler.Payments)
				babysitters.GET("/:id/attendance", babysitterHandler.Attendance)
			}

			// ------------------------------
			// ATTENDANCE
			// ------------------------------
			attendance := secured.Group("/attendance")
			{
				attendance.GET("", attendanceHandler.List)
				attendance.POST("", attendanceHandler.Create)
				attendance.GET("/reports", attendanceHandler.Reports)
				attendance.GET("/:id", attendanceHandler.Get)
				attendance.PUT("/:id", attendanceHandler.Update)
				attendance.DELETE("/:id", attendanceHandler.Delete)
				attendance.POST("/:id/check-out", attendanceHandler.CheckOut)
			}

			// ------------------------------
			// SCHEDULES
			// ------------------------------
			schedules := secured.Group("/schedules")
			{
				schedules.GET("", scheduleHandler.List)
				schedules.POST("", scheduleHandler.Create)
				schedules.GET("/:id", scheduleHandler.Get)
				schedules.PUT("/:id", scheduleHandler.Update)
				schedules.PUT("/:id/status", scheduleHandler.UpdateStatus)
				schedules.DELETE("/:id", scheduleHandler.Delete)
			}

			// ------------------------------
			// FINANCE (+ plural alias)
			// ------------------------------
			for _, prefix := range []string{"/finance", "/finances"} {
				finance := secured.Group(prefix)
				finance.GET("", financeHandler.List)
				finance.POST("", financeHandler.Create)
				finance.GET("/summary", financeHandler.Summary)
				finance.GET("/reports", financeHandler.Reports)
				finance.GET("/:id", financeHandler.Get)
				finance.PUT("/:id", financeHandler.Update)
				finance.DELETE("/:id", financeHandler.Delete)
				finance.POST("/:id/receipt", financeHandler.UploadReceipt)
				finance.POST("/:id/checkout", financeHandler.Checkout)
			}

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			notifications := secured.Group("/notifications")
			{
				notifications.GET("", notificationHandler.List)
				notifications.POST("", notificationHandler.Create)
				notifications.GET("/unread/count", notificationHandler.UnreadCount)
				notifications.PUT("/read-all", notificationHandler.MarkAllRead)
				notifications.GET("/preferences", notificationHandler.GetPreferences)
				notifications.PUT("/preferences", notificationHandler.UpdatePreferences)
				notifications.GET("/:id", notificationHandler.Get)
				notifications.PUT("/:id", notificationHandler.Update)
				notifications.PUT("/:id/read", notificationHandler.MarkRead)
				notifications.DELETE("/:id", notificationHandler.Delete)
			}

			// ------------------------------
			// DASHBOARD / REPORTS
			// ------------------------------
			secured.GET("/dashboard/stats", dashboardHandler.Stats)
			secured.GET("/reports/overview", adminOnly, reportHandler.Overview)
			secured.GET("/activity-logs", adminOnly, activityLogHandler.List)
		}
	}
}
