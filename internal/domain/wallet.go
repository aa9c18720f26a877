package domain

import "time"

// Wallet is a user's balance ledger for one currency. Currency strings may be
// compound ("USDT (TRC20)"); at most one wallet exists per (user, currency).
type Wallet struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Currency  string    `db:"currency" json:"currency"`
	Balance   float64   `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WithdrawRequest is a user-initiated withdrawal
type WithdrawRequest struct {
	Currency string  `json:"currency" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Address  string  `json:"address" binding:"required"`
}

// WithdrawReceipt shows the user what was debited and what will be sent
type WithdrawReceipt struct {
	TransactionID int64   `json:"transaction_id"`
	Currency      string  `json:"currency"`
	Amount        float64 `json:"amount"`
	Fee           float64 `json:"fee"`
	NetAmount     float64 `json:"net_amount"`
	Status        string  `json:"status"`
}
