package subscription

import (
	"time"

	"github.com/dark-store/bukafresh/internal/pkg/catalog"
)

// nextBillingDate is always one month out; the weekly cadence changes
// delivery frequency, not the billing period.
func nextBillingDate(now time.Time) time.Time {
	return now.AddDate(0, 1, 0)
}

// firstDeliveryDate finds the next Saturday on or after now. With monthly
// cadence the delivery stays inside the current month when possible,
// otherwise it moves to the first Saturday of the next month.
func firstDeliveryDate(billingCycle string, now time.Time) time.Time {
	next := catalog.NextDeliveryDate(now)
	if catalog.NormalizeCycle(billingCycle) != catalog.CycleMonthly {
		return next
	}
	if next.Month() == now.Month() {
		return next
	}
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return catalog.NextDeliveryDate(firstOfNext)
}
