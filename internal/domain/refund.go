package domain

import (
	"math"
	"time"
)

// RefundTier maps a minimum number of hours before the slot start
// to a refund percentage
type RefundTier struct {
	MinHoursBefore int
	Percent        int
}

// RefundPolicy is the fixed cancellation refund table, ordered by
// threshold descending. Applied as "greater-than-or-equal, highest
// threshold wins"; below the lowest threshold the refund is zero.
var RefundPolicy = []RefundTier{
	{MinHoursBefore: 24, Percent: 100},
	{MinHoursBefore: 12, Percent: 75},
	{MinHoursBefore: 6, Percent: 50},
	{MinHoursBefore: 2, Percent: 25},
}

// RefundPercent returns the refund percentage for a cancellation
// happening untilStart before the booking start time
func RefundPercent(untilStart time.Duration) int {
	for _, tier := range RefundPolicy {
		if untilStart >= time.Duration(tier.MinHoursBefore)*time.Hour {
			return tier.Percent
		}
	}
	return 0
}

// RefundAmount computes the refund for the given price and percentage,
// rounded half-up to kopecks
func RefundAmount(price float64, percent int) float64 {
	raw := price * float64(percent) / 100
	return math.Floor(raw*100+0.5) / 100
}
