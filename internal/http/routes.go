package http

import (
	"time"

	"trading_platform/internal/config"
	"trading_platform/internal/http/handlers"
	"trading_platform/internal/http/middleware"
	"trading_platform/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the full API surface. The websocket hub doubles as the
// event notifier for services.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	hub := ws.NewHub()

	h := handlers.NewHandler(db, handlers.HandlerConfig{
		WebhookSecret: cfg.WebhookSecret,
		ReferralBase:  cfg.ReferralBase,
	}, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authRateWindow := time.Duration(cfg.AuthRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))

	// Auth, stricter per-IP limit
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, authRateWindow)
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/login", authRL, h.Login)

	// Deposit webhook authenticates with an HMAC signature, not a JWT
	v1.POST("/webhooks/deposit", h.DepositWebhook)

	// User routes. Maintenance mode shuts this whole group down; admins keep
	// access through their own group below.
	user := v1.Group("")
	user.Use(middleware.JWT(), middleware.Blocked(db), middleware.Maintenance(db))
	{
		user.GET("/me", h.Me)

		user.GET("/bots", h.ListBots)
		user.POST("/bots/launch", h.LaunchBot)
		user.GET("/positions", h.Positions)
		user.POST("/positions/:id/stop", h.StopBot)

		user.GET("/wallets", h.Wallets)
		user.GET("/transactions", h.Transactions)
		user.POST("/withdraw", h.Withdraw)

		user.GET("/referral", h.ReferralInfo)

		user.POST("/kyc", h.SubmitKyc)
		user.GET("/kyc", h.KycStatus)

		user.POST("/tickets", h.CreateTicket)
		user.GET("/tickets", h.MyTickets)
		user.GET("/notifications", h.Notifications)
		user.PATCH("/notifications/:id/read", h.ReadNotification)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.JWT(), middleware.Admin(db))
	{
		admin.GET("/settings", h.AdminGetSettings)
		admin.PATCH("/settings", h.AdminUpdateSettings)

		admin.GET("/bots", h.AdminListBots)
		admin.POST("/bots", h.AdminCreateBot)
		admin.PUT("/bots/:id", h.AdminUpdateBot)
		admin.PATCH("/bots/:id/enabled", h.AdminSetBotEnabled)

		admin.GET("/users", h.AdminListUsers)
		admin.PATCH("/users/:id/blocked", h.AdminBlockUser)

		admin.GET("/kyc", h.AdminPendingKyc)
		admin.POST("/kyc/:id/review", h.AdminReviewKyc)

		admin.GET("/withdrawals", h.AdminPendingWithdrawals)
		admin.POST("/withdrawals/:id/approve", h.AdminApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", h.AdminRejectWithdrawal)

		admin.GET("/stats", h.AdminStats)
		admin.GET("/tickets", h.AdminOpenTickets)
		admin.POST("/tickets/:id/close", h.AdminCloseTicket)
		admin.POST("/notify", h.AdminNotify)
		admin.GET("/audit", h.AdminAuditLog)
	}

	// WebSocket event stream
	r.GET("/ws", h.WS(hub))
}
