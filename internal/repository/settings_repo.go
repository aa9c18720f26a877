package repository

import (
	"context"
	"errors"

	"trading_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// settingsID pins the singleton row
const settingsID = 1

type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = `id, withdrawal_fee, bronze_fee, silver_fee, gold_fee,
	maintenance_mode, bots_enabled, updated_at`

// Get always returns a settings value, inserting platform defaults on first
// access. Every call hits the database; fee and enablement checks gate money
// movement and must see admin edits immediately.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s, err := r.scan(r.db.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM settings WHERE id = $1`, settingsID))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// first access: seed defaults
	_, err = r.db.Exec(ctx,
		`INSERT INTO settings (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, settingsID)
	if err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM settings WHERE id = $1`, settingsID))
}

// Update merges a partial admin edit and returns the new value. Validation
// happens in the service layer before this is called.
func (r *SettingsRepository) Update(ctx context.Context, upd *domain.SettingsUpdate) (*domain.Settings, error) {
	if _, err := r.Get(ctx); err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRow(ctx,
		`UPDATE settings SET
			withdrawal_fee = COALESCE($2, withdrawal_fee),
			bronze_fee = COALESCE($3, bronze_fee),
			silver_fee = COALESCE($4, silver_fee),
			gold_fee = COALESCE($5, gold_fee),
			maintenance_mode = COALESCE($6, maintenance_mode),
			bots_enabled = COALESCE($7, bots_enabled),
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+settingsColumns,
		settingsID, upd.WithdrawalFee, upd.BronzeFee, upd.SilverFee, upd.GoldFee,
		upd.MaintenanceMode, upd.BotsEnabled,
	))
}

func (r *SettingsRepository) scan(row pgx.Row) (*domain.Settings, error) {
	var s domain.Settings
	if err := row.Scan(&s.ID, &s.WithdrawalFee, &s.BronzeFee, &s.SilverFee, &s.GoldFee,
		&s.MaintenanceMode, &s.BotsEnabled, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
