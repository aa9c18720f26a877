package service

import (
	"testing"

	"trading_platform/internal/domain"
)

func TestComputeTier(t *testing.T) {
	cases := []struct {
		active int
		want   domain.ReferralLevel
	}{
		{0, domain.ReferralBronze},
		{4, domain.ReferralBronze},
		{5, domain.ReferralSilver},
		{14, domain.ReferralSilver},
		{15, domain.ReferralGold},
		{100, domain.ReferralGold},
	}

	for _, tc := range cases {
		if got := ComputeTier(tc.active); got != tc.want {
			t.Fatalf("ComputeTier(%d) = %s; want %s", tc.active, got, tc.want)
		}
	}
}

func TestCommissionRate(t *testing.T) {
	s := &domain.Settings{BronzeFee: 0.01, SilverFee: 0.02, GoldFee: 0.05}

	cases := []struct {
		tier domain.ReferralLevel
		want float64
	}{
		{domain.ReferralBronze, 0.01},
		{domain.ReferralSilver, 0.02},
		{domain.ReferralGold, 0.05},
		// anything unrecognized falls back to bronze
		{domain.ReferralLevel("platinum"), 0.01},
		{domain.ReferralLevel(""), 0.01},
	}

	for _, tc := range cases {
		if got := CommissionRate(s, tc.tier); got != tc.want {
			t.Fatalf("CommissionRate(%s) = %v; want %v", tc.tier, got, tc.want)
		}
	}
}
