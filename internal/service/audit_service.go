package service

import (
	"context"

	"trading_platform/internal/domain"
	"trading_platform/internal/logger"
	"trading_platform/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService records important actions. Failures are logged and swallowed;
// auditing must never break the operation it describes.
type AuditService struct {
	repo *repository.AuditRepository
}

func NewAuditService(db *pgxpool.Pool) *AuditService {
	return &AuditService{repo: repository.NewAuditRepository(db)}
}

func (s *AuditService) Log(ctx context.Context, userID int64, category, action string, details map[string]interface{}, ip string) {
	entry := &domain.AuditLog{
		UserID:   userID,
		Action:   action,
		Category: category,
		Details:  details,
		IP:       ip,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Warn("audit log write failed", "action", action, "error", err)
	}
}

func (s *AuditService) Recent(ctx context.Context, category string, limit int) ([]*domain.AuditLog, error) {
	return s.repo.GetRecent(ctx, category, limit)
}
