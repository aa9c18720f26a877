package service

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseProfitRange parses an admin-entered "min-max%" string into fractional
// rates ("5-10%" -> 0.05, 0.10). A single value means min=max. The field is
// free text that may carry legacy garbage, so malformed input fails closed to
// 0-0 instead of erroring.
func ParseProfitRange(s string) (minRate, maxRate float64) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	if s == "" {
		return 0, 0
	}

	parts := strings.SplitN(s, "-", 2)
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lo < 0 {
		return 0, 0
	}
	hi := lo
	if len(parts) == 2 {
		hi, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || hi < lo {
			return 0, 0
		}
	}
	return lo / 100, hi / 100
}

// SimulateProfit computes the simulated yield of a stopped position. The
// profit range is quoted monthly, so the drawn rate is scaled by elapsed days
// over 30. Elapsed time is rounded up to whole days with a minimum of one.
// draw is a uniform sample in [0,1); the result is never negative.
func SimulateProfit(investment, minRate, maxRate float64, startedAt, now time.Time, draw float64) float64 {
	elapsedDays := math.Ceil(now.Sub(startedAt).Hours() / 24)
	if elapsedDays < 1 {
		elapsedDays = 1
	}
	timeAdjustment := elapsedDays / 30

	profitRate := minRate + draw*(maxRate-minRate)
	return investment * profitRate * timeAdjustment
}
