package domain

import "time"

// Support ticket statuses
const (
	TicketOpen   = "open"
	TicketClosed = "closed"
)

type SupportTicket struct {
	ID        int64      `db:"id" json:"id"`
	UserID    int64      `db:"user_id" json:"user_id"`
	Subject   string     `db:"subject" json:"subject"`
	Message   string     `db:"message" json:"message"`
	Status    string     `db:"status" json:"status"`
	Reply     string     `db:"reply" json:"reply,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	ClosedAt  *time.Time `db:"closed_at" json:"closed_at,omitempty"`
}
