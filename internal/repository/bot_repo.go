package repository

import (
	"context"
	"errors"

	"trading_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BotRepository struct {
	db *pgxpool.Pool
}

func NewBotRepository(db *pgxpool.Pool) *BotRepository {
	return &BotRepository{db: db}
}

const botColumns = `id, name, description, profit_range, risk_level, enabled, created_at`

// GetByID returns a catalog entry; nil if it does not exist
func (r *BotRepository) GetByID(ctx context.Context, id int64) (*domain.Bot, error) {
	var b domain.Bot
	err := r.db.QueryRow(ctx,
		`SELECT `+botColumns+` FROM bots WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.Description, &b.ProfitRange, &b.RiskLevel, &b.Enabled, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListEnabled returns bots users may launch
func (r *BotRepository) ListEnabled(ctx context.Context) ([]*domain.Bot, error) {
	return r.list(ctx, `SELECT `+botColumns+` FROM bots WHERE enabled ORDER BY id`)
}

// ListAll returns the full catalog for the admin panel
func (r *BotRepository) ListAll(ctx context.Context) ([]*domain.Bot, error) {
	return r.list(ctx, `SELECT `+botColumns+` FROM bots ORDER BY id`)
}

func (r *BotRepository) list(ctx context.Context, query string) ([]*domain.Bot, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Bot
	for rows.Next() {
		var b domain.Bot
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.ProfitRange, &b.RiskLevel, &b.Enabled, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	return result, rows.Err()
}

// Create inserts a catalog entry
func (r *BotRepository) Create(ctx context.Context, b *domain.Bot) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO bots (name, description, profit_range, risk_level, enabled)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		b.Name, b.Description, b.ProfitRange, b.RiskLevel, b.Enabled,
	).Scan(&b.ID, &b.CreatedAt)
}

// Update rewrites a catalog entry
func (r *BotRepository) Update(ctx context.Context, b *domain.Bot) error {
	res, err := r.db.Exec(ctx,
		`UPDATE bots SET name = $2, description = $3, profit_range = $4, risk_level = $5, enabled = $6
		 WHERE id = $1`,
		b.ID, b.Name, b.Description, b.ProfitRange, b.RiskLevel, b.Enabled,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetEnabled toggles a single bot without touching the rest of the entry
func (r *BotRepository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	res, err := r.db.Exec(ctx, `UPDATE bots SET enabled = $2 WHERE id = $1`, id, enabled)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
