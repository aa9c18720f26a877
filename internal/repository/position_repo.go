package repository

import (
	"context"
	"errors"
	"time"

	"trading_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PositionRepository struct {
	db *pgxpool.Pool
}

func NewPositionRepository(db *pgxpool.Pool) *PositionRepository {
	return &PositionRepository{db: db}
}

const positionColumns = `id, user_id, bot_id, investment, profit, currency, status,
	strategy, stop_loss_pct, take_profit_pct, max_duration_days, started_at, completed_at`

func scanPosition(row pgx.Row) (*domain.Position, error) {
	var p domain.Position
	if err := row.Scan(&p.ID, &p.UserID, &p.BotID, &p.Investment, &p.Profit, &p.Currency, &p.Status,
		&p.Strategy, &p.StopLossPct, &p.TakeProfitPct, &p.MaxDurationDays, &p.StartedAt, &p.CompletedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateTx opens a position inside the launch transaction
func (r *PositionRepository) CreateTx(ctx context.Context, tx pgx.Tx, p *domain.Position) error {
	return tx.QueryRow(ctx,
		`INSERT INTO positions (user_id, bot_id, investment, currency, status, strategy,
		                        stop_loss_pct, take_profit_pct, max_duration_days)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, started_at`,
		p.UserID, p.BotID, p.Investment, p.Currency, p.Status, p.Strategy,
		p.StopLossPct, p.TakeProfitPct, p.MaxDurationDays,
	).Scan(&p.ID, &p.StartedAt)
}

// GetByID returns a position; nil if absent
func (r *PositionRepository) GetByID(ctx context.Context, id int64) (*domain.Position, error) {
	p, err := scanPosition(r.db.QueryRow(ctx,
		`SELECT `+positionColumns+` FROM positions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// LockTx locks the position row for the rest of the transaction so that two
// concurrent Stop calls cannot both observe it active.
func (r *PositionRepository) LockTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Position, error) {
	p, err := scanPosition(tx.QueryRow(ctx,
		`SELECT `+positionColumns+` FROM positions WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// CompleteTx transitions active -> completed and records the simulated profit.
// A completed position is immutable; the status guard makes a second Stop a
// no-op at the storage level.
func (r *PositionRepository) CompleteTx(ctx context.Context, tx pgx.Tx, id int64, profit float64, completedAt time.Time) (bool, error) {
	res, err := tx.Exec(ctx,
		`UPDATE positions SET status = $2, profit = $3, completed_at = $4
		 WHERE id = $1 AND status = $5`,
		id, domain.PositionCompleted, profit, completedAt, domain.PositionActive,
	)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// GetByUserID returns a user's positions, newest first
func (r *PositionRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Position, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+positionColumns+` FROM positions
		 WHERE user_id = $1 ORDER BY started_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Position
	for rows.Next() {
		var p domain.Position
		if err := rows.Scan(&p.ID, &p.UserID, &p.BotID, &p.Investment, &p.Profit, &p.Currency, &p.Status,
			&p.Strategy, &p.StopLossPct, &p.TakeProfitPct, &p.MaxDurationDays, &p.StartedAt, &p.CompletedAt); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

// CountActiveReferrals counts distinct invited users who currently hold at
// least one active position. This drives the commission tier.
func (r *PositionRepository) CountActiveReferrals(ctx context.Context, referrerID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT u.id)
		 FROM users u
		 JOIN positions p ON p.user_id = u.id AND p.status = $2
		 WHERE u.referrer_id = $1`,
		referrerID, domain.PositionActive,
	).Scan(&n)
	return n, err
}
