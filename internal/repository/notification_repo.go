package repository

import (
	"context"

	"trading_platform/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO notifications (user_id, title, body)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		n.UserID, n.Title, n.Body,
	).Scan(&n.ID, &n.CreatedAt)
}

// CreateForAll inserts one notification per existing user and returns the
// affected user ids so they can be pushed over the websocket.
func (r *NotificationRepository) CreateForAll(ctx context.Context, title, body string) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`INSERT INTO notifications (user_id, title, body)
		 SELECT id, $1, $2 FROM users WHERE NOT is_blocked
		 RETURNING user_id`,
		title, body,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, body, read, created_at
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &n)
	}
	return result, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	return err
}
