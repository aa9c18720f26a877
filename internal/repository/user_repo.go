package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"trading_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, username, password_hash, is_admin, is_blocked,
	kyc_level, referral_level, referral_code, referrer_id, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.IsBlocked,
		&u.KycLevel, &u.ReferralLevel, &u.ReferralCode, &u.ReferrerID, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GenerateReferralCode generates a unique referral code
func GenerateReferralCode() string {
	bytes := make([]byte, 6)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Create inserts a new user. The referral code is generated here and is
// immutable, as is referrer_id once set.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ReferralCode == "" {
		u.ReferralCode = GenerateReferralCode()
	}
	if u.ReferralLevel == "" {
		u.ReferralLevel = domain.ReferralBronze
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO users (email, username, password_hash, is_admin, kyc_level, referral_level, referral_code, referrer_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		u.Email, u.Username, u.PasswordHash, u.IsAdmin, u.KycLevel, u.ReferralLevel, u.ReferralCode, u.ReferrerID,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// GetByReferralCode finds the inviting user for a referral code; nil if none
func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// SetKycLevel raises the user's verification level. Levels are monotonically
// non-decreasing, so a lower value is simply ignored.
func (r *UserRepository) SetKycLevel(ctx context.Context, tx pgx.Tx, userID int64, level int) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET kyc_level = GREATEST(kyc_level, $1) WHERE id = $2`,
		level, userID,
	)
	return err
}

// SetReferralLevel refreshes the denormalized tier shown in referral info
func (r *UserRepository) SetReferralLevel(ctx context.Context, userID int64, level domain.ReferralLevel) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET referral_level = $1 WHERE id = $2`,
		level, userID,
	)
	return err
}

// SetBlocked flips the account-suspension flag. Admin privilege is a separate
// column and is never touched here.
func (r *UserRepository) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET is_blocked = $1 WHERE id = $2`,
		blocked, userID,
	)
	return err
}

// List returns users for the admin panel
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.IsBlocked,
			&u.KycLevel, &u.ReferralLevel, &u.ReferralCode, &u.ReferrerID, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &u)
	}
	return result, rows.Err()
}

// CountReferrals returns how many users were invited by userID
func (r *UserRepository) CountReferrals(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE referrer_id = $1`, userID,
	).Scan(&n)
	return n, err
}
