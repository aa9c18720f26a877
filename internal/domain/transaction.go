package domain

import "time"

// Transaction types
const (
	TxDeposit            = "deposit"
	TxWithdrawal         = "withdrawal"
	TxBotInvestment      = "bot_investment"
	TxBotReturn          = "bot_return"
	TxBotProfit          = "bot_profit"
	TxReferralCommission = "referral_commission"
)

// Transaction statuses. Amount and type are immutable after creation; only
// status may transition, pending -> completed/failed.
const (
	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
	TxStatusFailed    = "failed"
)

// Transaction is an immutable append-only audit record of a balance change.
type Transaction struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Type      string    `db:"type" json:"type"`
	Currency  string    `db:"currency" json:"currency"`
	Amount    float64   `db:"amount" json:"amount"`
	Status    string    `db:"status" json:"status"`
	TxHash    string    `db:"tx_hash" json:"tx_hash,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	Fee       float64   `db:"fee" json:"fee,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
