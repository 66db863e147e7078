package api

import (
	"micromon/internal/archive"
	"micromon/internal/auth"
	"micromon/internal/config"
	"micromon/internal/model"
	"micromon/internal/notify"
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPHandler carries the process-wide collaborators. Everything is wired once
// at startup and passed in; handlers hold no mutable cross-request state.
type HTTPHandler struct {
	cfg         config.Config
	repo        model.Repository
	archive     archive.Store
	notifier    *notify.Notifier
	authManager *auth.Manager
}

// NewHTTPHandler creates the HTTP handler set.
func NewHTTPHandler(cfg config.Config, repo model.Repository, store archive.Store, notifier *notify.Notifier) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:         cfg,
		repo:        repo,
		archive:     store,
		notifier:    notifier,
		authManager: authManager,
	}, nil
}

// RegisterRoutes attaches every endpoint to the engine. Token validation runs
// first on protected groups, then the capability gate, then the handler; no
// handler executes for an unauthenticated caller.
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/login", h.Login)

	protected := r.Group("")
	protected.Use(h.AuthMiddleware())

	view := protected.Group("", h.RequireCapability(auth.CapViewDashboard))
	view.GET("/health/detailed", h.HealthDetailed)
	view.GET("/users", h.ListUsers)
	view.GET("/alerts", h.ListAlerts)
	view.GET("/metrics/system", h.SystemMetrics)
	view.GET("/metrics/history", h.MetricsHistory)
	view.GET("/logs", h.QueryLogs)
	view.GET("/backups", h.ListBackups)
	view.POST("/backups", h.CreateBackup)
	view.POST("/backups/:id/retry", h.RetryBackup)
	view.GET("/settings", h.GetSettings)
	view.GET("/notifications", h.GetNotifications)
	view.PUT("/notifications", h.UpdateNotifications)
	view.POST("/notifications/test", h.TestNotifications)

	alertAdmin := protected.Group("", h.RequireCapability(auth.CapManageAlerts))
	alertAdmin.POST("/alerts", h.CreateAlert)
	alertAdmin.PUT("/alerts/:id", h.UpdateAlert)
	alertAdmin.PUT("/alerts/:id/toggle", h.ToggleAlert)
	alertAdmin.DELETE("/alerts/:id", h.DeleteAlert)

	userAdmin := protected.Group("", h.RequireCapability(auth.CapManageUsers))
	userAdmin.POST("/users", h.CreateUser)
	userAdmin.PUT("/users/:id", h.UpdateUser)

	settingsAdmin := protected.Group("", h.RequireCapability(auth.CapManageSettings))
	settingsAdmin.PUT("/settings", h.UpdateSettings)
}
