package domain

import "time"

// Notification is an admin-sent message to one user (or all users when
// broadcast). Delivered over /ws when the user is connected and kept for
// later reads either way.
type Notification struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
