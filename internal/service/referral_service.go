package service

import (
	"context"

	"trading_platform/internal/domain"
	"trading_platform/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Tier thresholds: bronze below 5 active referrals, silver from 5 through 14,
// gold from 15 up.
const (
	silverThreshold = 5
	goldThreshold   = 15
)

// ReferralService computes commission tiers and pays referrers their cut of a
// referred user's realized bot profit.
type ReferralService struct {
	db              *pgxpool.Pool
	userRepo        *repository.UserRepository
	walletRepo      *repository.WalletRepository
	positionRepo    *repository.PositionRepository
	transactionRepo *repository.TransactionRepository
	settingsRepo    *repository.SettingsRepository
	referralBase    string
}

func NewReferralService(db *pgxpool.Pool, referralBase string) *ReferralService {
	return &ReferralService{
		db:              db,
		userRepo:        repository.NewUserRepository(db),
		walletRepo:      repository.NewWalletRepository(db),
		positionRepo:    repository.NewPositionRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		settingsRepo:    repository.NewSettingsRepository(db),
		referralBase:    referralBase,
	}
}

// ComputeTier derives the commission tier from the active-referral count.
// Deterministic for a given count; there is no caching.
func ComputeTier(activeReferrals int) domain.ReferralLevel {
	switch {
	case activeReferrals >= goldThreshold:
		return domain.ReferralGold
	case activeReferrals >= silverThreshold:
		return domain.ReferralSilver
	default:
		return domain.ReferralBronze
	}
}

// CommissionRate selects the fee for a tier, falling back to the bronze rate
// for anything unrecognized.
func CommissionRate(s *domain.Settings, tier domain.ReferralLevel) float64 {
	switch tier {
	case domain.ReferralGold:
		return s.GoldFee
	case domain.ReferralSilver:
		return s.SilverFee
	default:
		return s.BronzeFee
	}
}

// ApplyCommissionTx credits the referrer with their share of profitAmount
// inside the caller's transaction, so the referred user's settlement and the
// referrer's payout commit or roll back as one unit. The ledger record lands
// on the referrer's user id.
func (s *ReferralService) ApplyCommissionTx(ctx context.Context, tx pgx.Tx, referrerID int64, currency string, profitAmount float64) (float64, error) {
	activeCount, err := s.positionRepo.CountActiveReferrals(ctx, referrerID)
	if err != nil {
		return 0, err
	}
	tier := ComputeTier(activeCount)

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, err
	}

	commission := profitAmount * CommissionRate(settings, tier)
	if commission <= 0 {
		return 0, nil
	}

	wallet, err := s.walletRepo.GetOrCreateTx(ctx, tx, referrerID, currency)
	if err != nil {
		return 0, err
	}
	if _, err := s.walletRepo.CreditTx(ctx, tx, wallet.ID, commission); err != nil {
		return 0, err
	}

	record := &domain.Transaction{
		UserID:   referrerID,
		Type:     domain.TxReferralCommission,
		Currency: currency,
		Amount:   commission,
		Status:   domain.TxStatusCompleted,
	}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return 0, err
	}
	return commission, nil
}

// ReferralInfo is the payload for GET /api/referrals/info
type ReferralInfo struct {
	ReferralCode    string               `json:"referral_code"`
	ReferralLink    string               `json:"referral_link"`
	ReferralLevel   domain.ReferralLevel `json:"referral_level"`
	ReferralCount   int                  `json:"referral_count"`
	ActiveReferrals int                  `json:"active_referrals"`
	TotalEarnings   float64              `json:"total_earnings"`
}

// Info assembles the referral dashboard for a user and lazily refreshes the
// denormalized referral_level column. The stored level is cosmetic; the tier
// used for payouts is always recomputed at commission time.
func (s *ReferralService) Info(ctx context.Context, userID int64) (*ReferralInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.CountReferrals(ctx, userID)
	if err != nil {
		return nil, err
	}
	active, err := s.positionRepo.CountActiveReferrals(ctx, userID)
	if err != nil {
		return nil, err
	}

	tier := ComputeTier(active)
	if tier != user.ReferralLevel {
		if err := s.userRepo.SetReferralLevel(ctx, userID, tier); err != nil {
			return nil, err
		}
	}

	earnings, err := s.transactionRepo.SumByUserAndType(ctx, userID, domain.TxReferralCommission)
	if err != nil {
		return nil, err
	}

	return &ReferralInfo{
		ReferralCode:    user.ReferralCode,
		ReferralLink:    s.referralBase + "?ref=" + user.ReferralCode,
		ReferralLevel:   tier,
		ReferralCount:   total,
		ActiveReferrals: active,
		TotalEarnings:   earnings,
	}, nil
}
