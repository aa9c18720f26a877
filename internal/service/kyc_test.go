package service

import (
	"errors"
	"testing"

	"trading_platform/internal/domain"
)

func TestCheckKyc(t *testing.T) {
	cases := []struct {
		level   int
		action  string
		wantErr bool
	}{
		{0, ActionLaunchBot, true},
		{0, ActionWithdraw, true},
		{1, ActionLaunchBot, false},
		{1, ActionWithdraw, false},
		{3, ActionLaunchBot, false},
		// unknown actions require nothing
		{0, "view_dashboard", false},
	}

	for _, tc := range cases {
		err := CheckKyc(&domain.User{KycLevel: tc.level}, tc.action)
		if tc.wantErr && !errors.Is(err, ErrKycRequired) {
			t.Fatalf("level %d action %s: got %v; want ErrKycRequired", tc.level, tc.action, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("level %d action %s: got %v; want nil", tc.level, tc.action, err)
		}
	}
}

func TestCheckKycReportsRequiredLevel(t *testing.T) {
	for _, action := range []string{ActionLaunchBot, ActionWithdraw} {
		err := CheckKyc(&domain.User{KycLevel: 0}, action)

		var kycErr *KycError
		if !errors.As(err, &kycErr) {
			t.Fatalf("action %s: got %T; want *KycError", action, err)
		}
		if kycErr.Action != action {
			t.Fatalf("action = %s; want %s", kycErr.Action, action)
		}
		if kycErr.RequiredLevel != RequiredKycLevel(action) {
			t.Fatalf("required level = %d; want %d", kycErr.RequiredLevel, RequiredKycLevel(action))
		}
	}
}

func TestRequiredKycLevel(t *testing.T) {
	if got := RequiredKycLevel(ActionLaunchBot); got != 1 {
		t.Fatalf("launch requires level %d; want 1", got)
	}
	if got := RequiredKycLevel(ActionWithdraw); got != 1 {
		t.Fatalf("withdraw requires level %d; want 1", got)
	}
	if got := RequiredKycLevel("unknown"); got != 0 {
		t.Fatalf("unknown action requires level %d; want 0", got)
	}
}
