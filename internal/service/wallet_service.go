package service

import (
	"context"

	"trading_platform/internal/domain"
	"trading_platform/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WalletService handles deposits, withdrawals and balance queries
type WalletService struct {
	db              *pgxpool.Pool
	userRepo        *repository.UserRepository
	walletRepo      *repository.WalletRepository
	transactionRepo *repository.TransactionRepository
	settingsRepo    *repository.SettingsRepository
	notifier        Notifier
}

func NewWalletService(db *pgxpool.Pool, notifier Notifier) *WalletService {
	return &WalletService{
		db:              db,
		userRepo:        repository.NewUserRepository(db),
		walletRepo:      repository.NewWalletRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		settingsRepo:    repository.NewSettingsRepository(db),
		notifier:        notifier,
	}
}

// Wallets returns all wallets owned by a user
func (s *WalletService) Wallets(ctx context.Context, userID int64) ([]*domain.Wallet, error) {
	return s.walletRepo.GetByUserID(ctx, userID)
}

// Transactions returns the user's ledger history
func (s *WalletService) Transactions(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUserID(ctx, userID, limit)
}

// Deposit credits a confirmed incoming payment. Called from the signed
// webhook; the wallet is created lazily on first deposit.
func (s *WalletService) Deposit(ctx context.Context, userID int64, currency string, amount float64, txHash string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	wallet, err := s.walletRepo.GetOrCreateTx(ctx, tx, userID, currency)
	if err != nil {
		return nil, err
	}
	if _, err := s.walletRepo.CreditTx(ctx, tx, wallet.ID, amount); err != nil {
		return nil, err
	}

	record := &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxDeposit,
		Currency: currency,
		Amount:   amount,
		Status:   domain.TxStatusCompleted,
		TxHash:   txHash,
	}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.Push(userID, "deposit_credited", record)
	}
	return record, nil
}

// Withdraw debits the full requested amount and records a pending withdrawal.
// The fee comes off the payout, not the debit; admins settle the pending
// record via ApproveWithdrawal/RejectWithdrawal.
func (s *WalletService) Withdraw(ctx context.Context, userID int64, req *domain.WithdrawRequest) (*domain.WithdrawReceipt, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := CheckKyc(user, ActionWithdraw); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	fee := req.Amount * settings.WithdrawalFee

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	wallet, err := s.walletRepo.LockTx(ctx, tx, userID, req.Currency)
	if err != nil {
		return nil, err
	}
	if wallet == nil || wallet.Balance < req.Amount {
		return nil, ErrInsufficientFunds
	}
	if _, err := s.walletRepo.DebitTx(ctx, tx, wallet.ID, req.Amount); err != nil {
		return nil, err
	}

	record := &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxWithdrawal,
		Currency: req.Currency,
		Amount:   req.Amount,
		Status:   domain.TxStatusPending,
		Address:  req.Address,
		Fee:      fee,
	}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.WithdrawReceipt{
		TransactionID: record.ID,
		Currency:      req.Currency,
		Amount:        req.Amount,
		Fee:           fee,
		NetAmount:     req.Amount - fee,
		Status:        record.Status,
	}, nil
}

// ApproveWithdrawal marks a pending withdrawal completed
func (s *WalletService) ApproveWithdrawal(ctx context.Context, txID int64, txHash string) error {
	record, err := s.transactionRepo.GetByID(ctx, txID)
	if err != nil {
		return ErrNotFound
	}
	if record.Type != domain.TxWithdrawal {
		return ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ok, err := s.transactionRepo.UpdateStatusTx(ctx, tx, txID, domain.TxStatusCompleted)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidState
	}
	if txHash != "" {
		if _, err := tx.Exec(ctx, `UPDATE transactions SET tx_hash = $2 WHERE id = $1`, txID, txHash); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// RejectWithdrawal fails a pending withdrawal and refunds the full debit in
// the same transaction.
func (s *WalletService) RejectWithdrawal(ctx context.Context, txID int64) error {
	record, err := s.transactionRepo.GetByID(ctx, txID)
	if err != nil {
		return ErrNotFound
	}
	if record.Type != domain.TxWithdrawal {
		return ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ok, err := s.transactionRepo.UpdateStatusTx(ctx, tx, txID, domain.TxStatusFailed)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidState
	}

	wallet, err := s.walletRepo.GetOrCreateTx(ctx, tx, record.UserID, record.Currency)
	if err != nil {
		return err
	}
	if _, err := s.walletRepo.CreditTx(ctx, tx, wallet.ID, record.Amount); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// PendingWithdrawals returns the admin settlement queue
func (s *WalletService) PendingWithdrawals(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	return s.transactionRepo.ListByTypeAndStatus(ctx, domain.TxWithdrawal, domain.TxStatusPending, limit)
}
