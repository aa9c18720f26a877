package domain

import "time"

// KYC document statuses
const (
	KycPending  = "pending"
	KycApproved = "approved"
	KycRejected = "rejected"
)

// KycDocument is a submitted verification document. Approval bumps the
// user's kyc_level, which only ever increases.
type KycDocument struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	DocType     string     `db:"doc_type" json:"doc_type"`
	FileURL     string     `db:"file_url" json:"file_url"`
	TargetLevel int        `db:"target_level" json:"target_level"`
	Status      string     `db:"status" json:"status"`
	AdminNotes  string     `db:"admin_notes" json:"admin_notes,omitempty"`
	ReviewedBy  *int64     `db:"reviewed_by" json:"reviewed_by,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	ReviewedAt  *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
}
