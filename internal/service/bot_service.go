package service

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"trading_platform/internal/domain"
	"trading_platform/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Notifier pushes an event to a connected user. May be nil when no websocket
// hub is attached (tests, CLI tools).
type Notifier interface {
	Push(userID int64, event string, payload any)
}

// BotService owns the position lifecycle: launch debits the wallet and opens
// a position; stop simulates profit, settles the ledger and pays the
// referrer's commission. Both flows run as single database transactions.
type BotService struct {
	db              *pgxpool.Pool
	userRepo        *repository.UserRepository
	botRepo         *repository.BotRepository
	walletRepo      *repository.WalletRepository
	positionRepo    *repository.PositionRepository
	transactionRepo *repository.TransactionRepository
	settingsRepo    *repository.SettingsRepository
	referrals       *ReferralService
	notifier        Notifier

	// uniform draw in [0,1), swappable in tests
	rng func() float64
}

func NewBotService(db *pgxpool.Pool, referrals *ReferralService, notifier Notifier) *BotService {
	return &BotService{
		db:              db,
		userRepo:        repository.NewUserRepository(db),
		botRepo:         repository.NewBotRepository(db),
		walletRepo:      repository.NewWalletRepository(db),
		positionRepo:    repository.NewPositionRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		settingsRepo:    repository.NewSettingsRepository(db),
		referrals:       referrals,
		notifier:        notifier,
		rng:             rand.Float64,
	}
}

// ListEnabled returns launchable bots, or ErrPlatformDisabled when the admin
// toggle is off.
func (s *BotService) ListEnabled(ctx context.Context) ([]*domain.Bot, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.BotsEnabled {
		return nil, ErrPlatformDisabled
	}
	return s.botRepo.ListEnabled(ctx)
}

// Launch opens a position. Preconditions are checked in order and the first
// failure wins, before any mutation: platform toggle, bot availability, KYC
// level, investment amount, wallet balance. The debit, the position row and
// the ledger record commit as one transaction.
func (s *BotService) Launch(ctx context.Context, userID int64, req *domain.LaunchRequest) (*domain.Position, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.BotsEnabled {
		return nil, ErrPlatformDisabled
	}

	bot, err := s.botRepo.GetByID(ctx, req.BotID)
	if err != nil {
		return nil, err
	}
	if bot == nil || !bot.Enabled {
		return nil, ErrBotUnavailable
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := CheckKyc(user, ActionLaunchBot); err != nil {
		return nil, err
	}

	if req.Investment <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// The row lock serializes concurrent launches against the same wallet so
	// the sufficiency check cannot pass on a stale balance.
	wallet, err := s.walletRepo.LockTx(ctx, tx, userID, req.Currency)
	if err != nil {
		return nil, err
	}
	if wallet == nil || wallet.Balance < req.Investment {
		return nil, ErrInsufficientFunds
	}

	if _, err := s.walletRepo.DebitTx(ctx, tx, wallet.ID, req.Investment); err != nil {
		return nil, err
	}

	position := &domain.Position{
		UserID:          userID,
		BotID:           bot.ID,
		Investment:      req.Investment,
		Currency:        req.Currency,
		Status:          domain.PositionActive,
		Strategy:        req.Strategy,
		StopLossPct:     req.StopLossPct,
		TakeProfitPct:   req.TakeProfitPct,
		MaxDurationDays: req.MaxDurationDays,
	}
	if err := s.positionRepo.CreateTx(ctx, tx, position); err != nil {
		return nil, err
	}

	record := &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxBotInvestment,
		Currency: req.Currency,
		Amount:   req.Investment,
		Status:   domain.TxStatusCompleted,
	}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return position, nil
}

// Stop settles an active position: the position completes, the wallet is
// credited with investment plus simulated profit, ledger records are written,
// and the referrer's commission is paid, all in one transaction. If any step
// fails nothing is applied.
func (s *BotService) Stop(ctx context.Context, userID, positionID int64) (*domain.StopResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	position, err := s.positionRepo.LockTx(ctx, tx, positionID)
	if err != nil {
		return nil, err
	}
	if position == nil || position.UserID != userID {
		return nil, ErrNotFound
	}
	if position.Status != domain.PositionActive {
		return nil, ErrInvalidState
	}

	bot, err := s.botRepo.GetByID(ctx, position.BotID)
	if err != nil {
		return nil, err
	}
	minRate, maxRate := 0.0, 0.0
	if bot != nil {
		minRate, maxRate = ParseProfitRange(bot.ProfitRange)
	}

	now := time.Now()
	profit := SimulateProfit(position.Investment, minRate, maxRate, position.StartedAt, now, s.rng())

	ok, err := s.positionRepo.CompleteTx(ctx, tx, position.ID, profit, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	wallet, err := s.walletRepo.GetOrCreateTx(ctx, tx, userID, position.Currency)
	if err != nil {
		return nil, err
	}
	if _, err := s.walletRepo.CreditTx(ctx, tx, wallet.ID, position.Investment+profit); err != nil {
		return nil, err
	}

	returnRecord := &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxBotReturn,
		Currency: position.Currency,
		Amount:   position.Investment,
		Status:   domain.TxStatusCompleted,
	}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, returnRecord); err != nil {
		return nil, err
	}

	if profit > 0 {
		profitRecord := &domain.Transaction{
			UserID:   userID,
			Type:     domain.TxBotProfit,
			Currency: position.Currency,
			Amount:   profit,
			Status:   domain.TxStatusCompleted,
		}
		if err := s.transactionRepo.CreateWithTx(ctx, tx, profitRecord); err != nil {
			return nil, err
		}

		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user.ReferrerID != nil {
			if _, err := s.referrals.ApplyCommissionTx(ctx, tx, *user.ReferrerID, position.Currency, profit); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	result := &domain.StopResult{
		ID:         position.ID,
		Status:     domain.PositionCompleted,
		Investment: position.Investment,
		Profit:     profit,
		Total:      position.Investment + profit,
	}
	if s.notifier != nil {
		s.notifier.Push(userID, "position_completed", result)
	}
	return result, nil
}

// Positions returns a user's open and settled positions
func (s *BotService) Positions(ctx context.Context, userID int64) ([]*domain.Position, error) {
	return s.positionRepo.GetByUserID(ctx, userID, 100)
}

// ValidateProfitRange rejects admin-entered ranges the lifecycle could not
// parse. Legacy malformed data is still tolerated at read time; new writes
// are not.
func ValidateProfitRange(s string) error {
	trimmed := strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	parts := strings.SplitN(trimmed, "-", 2)
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lo < 0 {
		return errors.New("profit range must look like \"5-10%\"")
	}
	if len(parts) == 2 {
		hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || hi < lo {
			return errors.New("profit range must look like \"5-10%\"")
		}
	}
	return nil
}
