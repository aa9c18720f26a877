package domain

import "time"

// Bot is an admin-managed catalog entry. ProfitRange is admin-entered free
// text of the form "min-max%" (or a single "n%"); the lifecycle parses it and
// treats malformed values as 0-0.
type Bot struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	ProfitRange string    `db:"profit_range" json:"profit_range"`
	RiskLevel   string    `db:"risk_level" json:"risk_level"`
	Enabled     bool      `db:"enabled" json:"enabled"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Position statuses. The only transition is active -> completed (via Stop);
// a completed position is immutable.
const (
	PositionActive    = "active"
	PositionCompleted = "completed"
)

// Position is one user investment in a bot.
type Position struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	BotID           int64      `db:"bot_id" json:"bot_id"`
	Investment      float64    `db:"investment" json:"investment"`
	Profit          float64    `db:"profit" json:"profit"`
	Currency        string     `db:"currency" json:"currency"`
	Status          string     `db:"status" json:"status"`
	Strategy        string     `db:"strategy" json:"strategy,omitempty"`
	StopLossPct     *float64   `db:"stop_loss_pct" json:"stop_loss_percentage,omitempty"`
	TakeProfitPct   *float64   `db:"take_profit_pct" json:"take_profit_percentage,omitempty"`
	MaxDurationDays *int       `db:"max_duration_days" json:"max_duration_days,omitempty"`
	StartedAt       time.Time  `db:"started_at" json:"started_at"`
	CompletedAt     *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// LaunchRequest is the payload for POST /api/bots/launch
type LaunchRequest struct {
	BotID           int64    `json:"bot_id" binding:"required"`
	Investment      float64  `json:"investment" binding:"required"`
	Currency        string   `json:"currency" binding:"required"`
	Strategy        string   `json:"strategy"`
	StopLossPct     *float64 `json:"stop_loss_percentage"`
	TakeProfitPct   *float64 `json:"take_profit_percentage"`
	MaxDurationDays *int     `json:"max_duration_days"`
}

// StopResult summarizes a settled position
type StopResult struct {
	ID         int64   `json:"id"`
	Status     string  `json:"status"`
	Investment float64 `json:"investment"`
	Profit     float64 `json:"profit"`
	Total      float64 `json:"total"`
}
