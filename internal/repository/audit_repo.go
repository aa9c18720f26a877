package repository

import (
	"context"
	"encoding/json"

	"trading_platform/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, a *domain.AuditLog) error {
	detailsJSON, err := json.Marshal(a.Details)
	if err != nil {
		detailsJSON = []byte("{}")
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO audit_logs (user_id, action, category, details, ip)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		a.UserID, a.Action, a.Category, detailsJSON, a.IP,
	).Scan(&a.ID, &a.CreatedAt)
}

// GetRecent returns the latest audit entries (admin view)
func (r *AuditRepository) GetRecent(ctx context.Context, category string, limit int) ([]*domain.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id, user_id, action, category, details, ip, created_at
		 FROM audit_logs`
	args := []any{limit}
	if category != "" {
		query += ` WHERE category = $2`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.AuditLog
	for rows.Next() {
		var (
			a           domain.AuditLog
			detailsJSON []byte
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Category, &detailsJSON, &a.IP, &a.CreatedAt); err != nil {
			return nil, err
		}
		if len(detailsJSON) > 0 {
			_ = json.Unmarshal(detailsJSON, &a.Details)
		}
		result = append(result, &a)
	}
	return result, rows.Err()
}
