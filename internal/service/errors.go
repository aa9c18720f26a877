package service

import (
	"errors"

	"trading_platform/internal/repository"
)

// Failure taxonomy surfaced to the HTTP layer. Every precondition failure is
// detected before any mutation; handlers map these to status codes.
// ErrInsufficientFunds is shared with the repository layer so the storage-level
// debit guard surfaces as the same error the balance precheck does.
var (
	ErrPlatformDisabled  = errors.New("bots are disabled platform-wide")
	ErrBotUnavailable    = errors.New("bot not found or disabled")
	ErrKycRequired       = errors.New("kyc verification required")
	ErrInsufficientFunds = repository.ErrInsufficientFunds
	ErrInvalidState      = errors.New("invalid position state")
	ErrNotFound          = errors.New("not found")
	ErrInvalidSetting    = errors.New("setting out of range")
	ErrInvalidAmount     = errors.New("invalid amount")
)
