package service

import (
	"context"

	"trading_platform/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminService provides platform statistics for the admin dashboard
type AdminService struct {
	db *pgxpool.Pool
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{db: db}
}

// Stats represents platform statistics
type Stats struct {
	TotalUsers         int64   `json:"total_users"`
	BlockedUsers       int64   `json:"blocked_users"`
	ActivePositions    int64   `json:"active_positions"`
	TotalInvested      float64 `json:"total_invested"`
	TotalProfitPaid    float64 `json:"total_profit_paid"`
	TotalCommissions   float64 `json:"total_commissions"`
	PendingWithdrawals int64   `json:"pending_withdrawals"`
	PendingKyc         int64   `json:"pending_kyc"`
	OpenTickets        int64   `json:"open_tickets"`
}

// GetStats returns platform statistics
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	_ = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers)
	_ = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_blocked`).Scan(&stats.BlockedUsers)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(investment), 0)
		FROM positions WHERE status = $1
	`, domain.PositionActive).Scan(&stats.ActivePositions, &stats.TotalInvested)

	_ = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = $1
	`, domain.TxBotProfit).Scan(&stats.TotalProfitPaid)

	_ = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = $1
	`, domain.TxReferralCommission).Scan(&stats.TotalCommissions)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions WHERE type = $1 AND status = $2
	`, domain.TxWithdrawal, domain.TxStatusPending).Scan(&stats.PendingWithdrawals)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM kyc_documents WHERE status = $1
	`, domain.KycPending).Scan(&stats.PendingKyc)

	_ = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM support_tickets WHERE status = $1
	`, domain.TicketOpen).Scan(&stats.OpenTickets)

	return stats, nil
}
