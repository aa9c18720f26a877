package repository

import (
	"context"

	"trading_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new ledger record. Amount and type are never updated after
// creation; only status transitions are allowed (see UpdateStatus).
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, currency, amount, status, tx_hash, address, fee)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		tx.UserID, tx.Type, tx.Currency, tx.Amount, tx.Status, tx.TxHash, tx.Address, tx.Fee,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// CreateWithTx inserts a ledger record using an existing database transaction
func (r *TransactionRepository) CreateWithTx(ctx context.Context, dbTx pgx.Tx, tx *domain.Transaction) error {
	return dbTx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, currency, amount, status, tx_hash, address, fee)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		tx.UserID, tx.Type, tx.Currency, tx.Amount, tx.Status, tx.TxHash, tx.Address, tx.Fee,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// GetByUserID returns recent transactions for a user
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, currency, amount, status, tx_hash, address, fee, created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetByID returns one transaction
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, type, currency, amount, status, tx_hash, address, fee, created_at
		 FROM transactions WHERE id = $1`, id,
	).Scan(&t.ID, &t.UserID, &t.Type, &t.Currency, &t.Amount, &t.Status, &t.TxHash, &t.Address, &t.Fee, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByTypeAndStatus returns transactions filtered by type and status (admin queues)
func (r *TransactionRepository) ListByTypeAndStatus(ctx context.Context, txType, status string, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, currency, amount, status, tx_hash, address, fee, created_at
		 FROM transactions
		 WHERE type = $1 AND status = $2
		 ORDER BY created_at
		 LIMIT $3`,
		txType, status, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// UpdateStatusTx transitions a pending transaction to completed or failed
func (r *TransactionRepository) UpdateStatusTx(ctx context.Context, dbTx pgx.Tx, id int64, status string) (bool, error) {
	res, err := dbTx.Exec(ctx,
		`UPDATE transactions SET status = $2 WHERE id = $1 AND status = $3`,
		id, status, domain.TxStatusPending,
	)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// SumByUserAndType returns the total amount of a transaction type for a user
// (used for referral earnings display)
func (r *TransactionRepository) SumByUserAndType(ctx context.Context, userID int64, txType string) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = $1 AND type = $2`,
		userID, txType,
	).Scan(&total)
	return total, err
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Currency, &t.Amount, &t.Status,
			&t.TxHash, &t.Address, &t.Fee, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}
