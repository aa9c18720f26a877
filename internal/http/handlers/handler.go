package handlers

import (
	"errors"
	"net/http"

	"trading_platform/internal/repository"
	"trading_platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds handler-level configuration
type HandlerConfig struct {
	WebhookSecret string
	ReferralBase  string
}

type Handler struct {
	DB               *pgxpool.Pool
	Config           HandlerConfig
	Notifier         service.Notifier
	AuthService      *service.AuthService
	BotService       *service.BotService
	WalletService    *service.WalletService
	ReferralService  *service.ReferralService
	SettingsService  *service.SettingsService
	AdminService     *service.AdminService
	AuditService     *service.AuditService
	UserRepo         *repository.UserRepository
	BotRepo          *repository.BotRepository
	KycRepo          *repository.KycRepository
	TicketRepo       *repository.TicketRepository
	NotificationRepo *repository.NotificationRepository
}

func NewHandler(db *pgxpool.Pool, cfg HandlerConfig, notifier service.Notifier) *Handler {
	referrals := service.NewReferralService(db, cfg.ReferralBase)
	return &Handler{
		DB:               db,
		Config:           cfg,
		Notifier:         notifier,
		AuthService:      service.NewAuthService(db),
		BotService:       service.NewBotService(db, referrals, notifier),
		WalletService:    service.NewWalletService(db, notifier),
		ReferralService:  referrals,
		SettingsService:  service.NewSettingsService(db),
		AdminService:     service.NewAdminService(db),
		AuditService:     service.NewAuditService(db),
		UserRepo:         repository.NewUserRepository(db),
		BotRepo:          repository.NewBotRepository(db),
		KycRepo:          repository.NewKycRepository(db),
		TicketRepo:       repository.NewTicketRepository(db),
		NotificationRepo: repository.NewNotificationRepository(db),
	}
}

// getUserID extracts the authenticated user id from the gin context
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// respondError maps the service failure taxonomy to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlatformDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "bots are currently disabled"})
	case errors.Is(err, service.ErrBotUnavailable):
		c.JSON(http.StatusNotFound, gin.H{"error": "bot not found or disabled"})
	case errors.Is(err, service.ErrKycRequired):
		level := 1
		var kycErr *service.KycError
		if errors.As(err, &kycErr) {
			level = kycErr.RequiredLevel
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error":          "kyc verification required",
			"required_level": level,
		})
	case errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient funds"})
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "position is not active"})
	case errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
	case errors.Is(err, service.ErrInvalidSetting):
		c.JSON(http.StatusBadRequest, gin.H{"error": "fee must be between 0 and 1"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
