package domain

import "time"

// ReferralLevel is the commission tier derived from active-referral counts.
// It is a cosmetic denormalization; the authoritative value is always
// recomputed from the count at commission time.
type ReferralLevel string

const (
	ReferralBronze ReferralLevel = "bronze"
	ReferralSilver ReferralLevel = "silver"
	ReferralGold   ReferralLevel = "gold"
)

type User struct {
	ID            int64         `db:"id" json:"id"`
	Email         string        `db:"email" json:"email"`
	Username      string        `db:"username" json:"username"`
	PasswordHash  string        `db:"password_hash" json:"-"`
	IsAdmin       bool          `db:"is_admin" json:"is_admin"`
	IsBlocked     bool          `db:"is_blocked" json:"is_blocked"`
	KycLevel      int           `db:"kyc_level" json:"kyc_level"`
	ReferralLevel ReferralLevel `db:"referral_level" json:"referral_level"`
	ReferralCode  string        `db:"referral_code" json:"referral_code"`
	ReferrerID    *int64        `db:"referrer_id" json:"referrer_id,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}
