package service

import (
	"context"

	"trading_platform/internal/domain"
	"trading_platform/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsService validates and applies admin edits to the platform settings
// singleton. Reads go straight to the store on every call.
type SettingsService struct {
	repo *repository.SettingsRepository
}

func NewSettingsService(db *pgxpool.Pool) *SettingsService {
	return &SettingsService{repo: repository.NewSettingsRepository(db)}
}

func (s *SettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.repo.Get(ctx)
}

// Update merges a partial edit. Each fee must be a fraction in [0,1]; an
// out-of-range value rejects the whole edit before anything persists.
func (s *SettingsService) Update(ctx context.Context, upd *domain.SettingsUpdate) (*domain.Settings, error) {
	for _, fee := range []*float64{upd.WithdrawalFee, upd.BronzeFee, upd.SilverFee, upd.GoldFee} {
		if fee != nil && (*fee < 0 || *fee > 1) {
			return nil, ErrInvalidSetting
		}
	}
	return s.repo.Update(ctx, upd)
}
