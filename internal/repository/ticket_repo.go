package repository

import (
	"context"
	"time"

	"trading_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, user_id, subject, message, status, reply, created_at, closed_at`

func (r *TicketRepository) Create(ctx context.Context, t *domain.SupportTicket) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO support_tickets (user_id, subject, message, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		t.UserID, t.Subject, t.Message, t.Status,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *TicketRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.SupportTicket, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ticketColumns+` FROM support_tickets WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ListOpen returns the admin support queue
func (r *TicketRepository) ListOpen(ctx context.Context, limit int) ([]*domain.SupportTicket, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+ticketColumns+` FROM support_tickets WHERE status = $1 ORDER BY created_at LIMIT $2`,
		domain.TicketOpen, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// Close resolves a ticket with an admin reply
func (r *TicketRepository) Close(ctx context.Context, id int64, reply string) (bool, error) {
	res, err := r.db.Exec(ctx,
		`UPDATE support_tickets SET status = $2, reply = $3, closed_at = $4
		 WHERE id = $1 AND status = $5`,
		id, domain.TicketClosed, reply, time.Now(), domain.TicketOpen,
	)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func scanTickets(rows pgx.Rows) ([]*domain.SupportTicket, error) {
	var result []*domain.SupportTicket
	for rows.Next() {
		var t domain.SupportTicket
		if err := rows.Scan(&t.ID, &t.UserID, &t.Subject, &t.Message, &t.Status, &t.Reply,
			&t.CreatedAt, &t.ClosedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}
