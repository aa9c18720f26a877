package repository

import (
	"context"
	"errors"
	"time"

	"trading_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type KycRepository struct {
	db    *pgxpool.Pool
	users *UserRepository
}

func NewKycRepository(db *pgxpool.Pool) *KycRepository {
	return &KycRepository{db: db, users: NewUserRepository(db)}
}

const kycColumns = `id, user_id, doc_type, file_url, target_level, status,
	admin_notes, reviewed_by, created_at, reviewed_at`

// Create records a submitted document
func (r *KycRepository) Create(ctx context.Context, d *domain.KycDocument) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO kyc_documents (user_id, doc_type, file_url, target_level, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		d.UserID, d.DocType, d.FileURL, d.TargetLevel, d.Status,
	).Scan(&d.ID, &d.CreatedAt)
}

// GetByUserID returns a user's submissions, newest first
func (r *KycRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.KycDocument, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+kycColumns+` FROM kyc_documents WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanKycDocs(rows)
}

// ListPending returns the admin review queue
func (r *KycRepository) ListPending(ctx context.Context, limit int) ([]*domain.KycDocument, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+kycColumns+` FROM kyc_documents WHERE status = $1 ORDER BY created_at LIMIT $2`,
		domain.KycPending, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanKycDocs(rows)
}

// Review settles a pending document. Approval bumps the user's kyc_level in
// the same transaction so the gate and the document can never disagree.
func (r *KycRepository) Review(ctx context.Context, docID, reviewerID int64, approve bool, notes string) (*domain.KycDocument, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	status := domain.KycRejected
	if approve {
		status = domain.KycApproved
	}

	var d domain.KycDocument
	err = tx.QueryRow(ctx,
		`UPDATE kyc_documents
		 SET status = $2, admin_notes = $3, reviewed_by = $4, reviewed_at = $5
		 WHERE id = $1 AND status = $6
		 RETURNING `+kycColumns,
		docID, status, notes, reviewerID, time.Now(), domain.KycPending,
	).Scan(&d.ID, &d.UserID, &d.DocType, &d.FileURL, &d.TargetLevel, &d.Status,
		&d.AdminNotes, &d.ReviewedBy, &d.CreatedAt, &d.ReviewedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if approve {
		if err := r.users.SetKycLevel(ctx, tx, d.UserID, d.TargetLevel); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanKycDocs(rows pgx.Rows) ([]*domain.KycDocument, error) {
	var result []*domain.KycDocument
	for rows.Next() {
		var d domain.KycDocument
		if err := rows.Scan(&d.ID, &d.UserID, &d.DocType, &d.FileURL, &d.TargetLevel, &d.Status,
			&d.AdminNotes, &d.ReviewedBy, &d.CreatedAt, &d.ReviewedAt); err != nil {
			return nil, err
		}
		result = append(result, &d)
	}
	return result, rows.Err()
}
