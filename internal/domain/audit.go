package domain

import "time"

// AuditLog records important actions for later review
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Action    string                 `db:"action" json:"action"`
	Category  string                 `db:"category" json:"category"`
	Details   map[string]interface{} `db:"details" json:"details"`
	IP        string                 `db:"ip" json:"ip,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Audit categories
const (
	AuditCategoryAuth    = "auth"
	AuditCategoryBot     = "bot"
	AuditCategoryPayment = "payment"
	AuditCategoryAdmin   = "admin"
	AuditCategoryKyc     = "kyc"
)

// Audit actions
const (
	AuditActionRegister        = "register"
	AuditActionLogin           = "login"
	AuditActionBotLaunch       = "bot_launch"
	AuditActionBotStop         = "bot_stop"
	AuditActionDeposit         = "deposit"
	AuditActionWithdrawRequest = "withdraw_request"
	AuditActionWithdrawApprove = "withdraw_approve"
	AuditActionWithdrawReject  = "withdraw_reject"
	AuditActionKycSubmit       = "kyc_submit"
	AuditActionKycReview       = "kyc_review"
	AuditActionAdminSettings   = "admin_settings_update"
	AuditActionAdminBlockUser  = "admin_block_user"
	AuditActionAdminNotify     = "admin_notify"
)
