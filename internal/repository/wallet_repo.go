package repository

import (
	"context"
	"errors"

	"trading_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

type WalletRepository struct {
	db *pgxpool.Pool
}

func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

const walletColumns = `id, user_id, currency, balance, created_at`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	if err := row.Scan(&w.ID, &w.UserID, &w.Currency, &w.Balance, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// Get retrieves the wallet for (userID, currency); nil if it does not exist
func (r *WalletRepository) Get(ctx context.Context, userID int64, currency string) (*domain.Wallet, error) {
	w, err := scanWallet(r.db.QueryRow(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 AND currency = $2`,
		userID, currency,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return w, err
}

// GetOrCreate returns the existing wallet or creates one with zero balance.
// The unique (user_id, currency) constraint guarantees at most one row even
// under concurrent first requests.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID int64, currency string) (*domain.Wallet, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO wallets (user_id, currency) VALUES ($1, $2)
		 ON CONFLICT (user_id, currency) DO NOTHING`,
		userID, currency,
	)
	if err != nil {
		return nil, err
	}
	return scanWallet(r.db.QueryRow(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 AND currency = $2`,
		userID, currency,
	))
}

// GetOrCreateTx is GetOrCreate inside an existing database transaction
func (r *WalletRepository) GetOrCreateTx(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error) {
	_, err := tx.Exec(ctx,
		`INSERT INTO wallets (user_id, currency) VALUES ($1, $2)
		 ON CONFLICT (user_id, currency) DO NOTHING`,
		userID, currency,
	)
	if err != nil {
		return nil, err
	}
	return scanWallet(tx.QueryRow(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 AND currency = $2 FOR UPDATE`,
		userID, currency,
	))
}

// LockTx locks the wallet row for the rest of the transaction and returns the
// current balance. Every balance mutation goes through this lock so that
// concurrent debits cannot pass a sufficiency check against a stale balance.
func (r *WalletRepository) LockTx(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error) {
	w, err := scanWallet(tx.QueryRow(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 AND currency = $2 FOR UPDATE`,
		userID, currency,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return w, err
}

// DebitTx reduces the wallet balance. The caller must hold the row lock; the
// balance condition is still enforced here as a second line of defense.
func (r *WalletRepository) DebitTx(ctx context.Context, tx pgx.Tx, walletID int64, amount float64) (float64, error) {
	var newBalance float64
	err := tx.QueryRow(ctx,
		`UPDATE wallets SET balance = balance - $1
		 WHERE id = $2 AND balance >= $1
		 RETURNING balance`,
		amount, walletID,
	).Scan(&newBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrInsufficientFunds
	}
	return newBalance, err
}

// CreditTx increases the wallet balance
func (r *WalletRepository) CreditTx(ctx context.Context, tx pgx.Tx, walletID int64, amount float64) (float64, error) {
	var newBalance float64
	err := tx.QueryRow(ctx,
		`UPDATE wallets SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		amount, walletID,
	).Scan(&newBalance)
	return newBalance, err
}

// GetByUserID returns all wallets owned by a user
func (r *WalletRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Wallet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 ORDER BY currency`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Wallet
	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.Currency, &w.Balance, &w.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &w)
	}
	return result, rows.Err()
}
