package service

import (
	"context"
	"errors"
	"testing"

	"trading_platform/internal/domain"
)

func TestSettingsUpdateRejectsOutOfRangeFees(t *testing.T) {
	svc := &SettingsService{}

	bad := []float64{-0.01, 1.01, 2, -5}
	for _, v := range bad {
		fee := v
		_, err := svc.Update(context.Background(), &domain.SettingsUpdate{WithdrawalFee: &fee})
		if !errors.Is(err, ErrInvalidSetting) {
			t.Fatalf("fee %v: got %v; want ErrInvalidSetting", v, err)
		}
	}

	// the whole edit is rejected even when only one field is out of range
	good, badFee := 0.1, 1.5
	_, err := svc.Update(context.Background(), &domain.SettingsUpdate{
		BronzeFee: &good,
		GoldFee:   &badFee,
	})
	if !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("mixed edit: got %v; want ErrInvalidSetting", err)
	}
}
