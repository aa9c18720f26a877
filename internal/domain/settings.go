package domain

import "time"

// Settings is the singleton platform configuration row (id fixed to 1).
// Fee rates are fractions in [0,1]. Reads must always hit the store; the
// lifecycle and commission engine never cache this.
type Settings struct {
	ID              int64     `db:"id" json:"id"`
	WithdrawalFee   float64   `db:"withdrawal_fee" json:"withdrawal_fee"`
	BronzeFee       float64   `db:"bronze_fee" json:"bronze_fee"`
	SilverFee       float64   `db:"silver_fee" json:"silver_fee"`
	GoldFee         float64   `db:"gold_fee" json:"gold_fee"`
	MaintenanceMode bool      `db:"maintenance_mode" json:"maintenance_mode"`
	BotsEnabled     bool      `db:"bots_enabled" json:"bots_enabled"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// SettingsUpdate carries a partial admin edit; nil fields are left unchanged.
type SettingsUpdate struct {
	WithdrawalFee   *float64 `json:"withdrawal_fee"`
	BronzeFee       *float64 `json:"bronze_fee"`
	SilverFee       *float64 `json:"silver_fee"`
	GoldFee         *float64 `json:"gold_fee"`
	MaintenanceMode *bool    `json:"maintenance_mode"`
	BotsEnabled     *bool    `json:"bots_enabled"`
}
