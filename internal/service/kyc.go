package service

import "trading_platform/internal/domain"

// Gated actions
const (
	ActionLaunchBot = "launch_bot"
	ActionWithdraw  = "withdraw"
)

var kycRequirements = map[string]int{
	ActionLaunchBot: 1,
	ActionWithdraw:  1,
}

// RequiredKycLevel returns the verification level an action needs. Unknown
// actions require nothing.
func RequiredKycLevel(action string) int {
	return kycRequirements[action]
}

// KycError reports which verification level the denied action needs, so the
// HTTP layer can tell the user what to submit. It matches ErrKycRequired
// under errors.Is.
type KycError struct {
	Action        string
	RequiredLevel int
}

func (e *KycError) Error() string { return "kyc verification required" }

func (e *KycError) Is(target error) bool { return target == ErrKycRequired }

// CheckKyc permits or denies an action. Levels are strictly increasing gates:
// level N implies every permission below it.
func CheckKyc(user *domain.User, action string) error {
	if required := RequiredKycLevel(action); user.KycLevel < required {
		return &KycError{Action: action, RequiredLevel: required}
	}
	return nil
}
