package catalog

import (
	"strings"
	"time"
)

// Tier names for the fixed set of grocery packages.
const (
	TierEssentials = "essentials"
	TierStandard   = "standard"
	TierPremium    = "premium"
)

// Billing cycles. Both prices of a package are monthly charges; the cycle
// only controls how often groceries are delivered, not how often the
// customer is billed.
const (
	CycleWeekly  = "weekly"
	CycleMonthly = "monthly"
)

// DeliveryDay is fixed for the whole system.
const DeliveryDay = "saturday"

// Package is an immutable catalog entry. Selected by reference, never
// mutated.
type Package struct {
	ID                   string   `json:"id"`
	Tier                 string   `json:"tier"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	WeeklyDeliveryPrice  int64    `json:"weekly_delivery_price"`  // monthly charge with weekly deliveries
	MonthlyDeliveryPrice int64    `json:"monthly_delivery_price"` // monthly charge with one delivery per month
	Servings             string   `json:"servings"`
	Features             []string `json:"features"`
	Popular              bool     `json:"popular,omitempty"`
}

var packages = []Package{
	{
		ID:                   "pkg-essentials",
		Tier:                 TierEssentials,
		Name:                 "Essentials Package",
		Description:          "Basic fresh groceries for small households",
		WeeklyDeliveryPrice:  80000,
		MonthlyDeliveryPrice: 70000,
		Servings:             "1-2 people",
		Features: []string{
			"Staple foods and grains",
			"Seasonal vegetables",
			"Fresh fruit selection",
			"Free Saturday delivery",
		},
	},
	{
		ID:                   "pkg-standard",
		Tier:                 TierStandard,
		Name:                 "Standard Package",
		Description:          "Complete fresh groceries for medium households",
		WeeklyDeliveryPrice:  140000,
		MonthlyDeliveryPrice: 110000,
		Servings:             "3-5 people",
		Features: []string{
			"Everything in Essentials",
			"Proteins: chicken, fish and beef",
			"Dairy and beverages",
			"Free Saturday delivery",
		},
		Popular: true,
	},
	{
		ID:                   "pkg-premium",
		Tier:                 TierPremium,
		Name:                 "Premium Package",
		Description:          "Premium fresh groceries for large households",
		WeeklyDeliveryPrice:  320000,
		MonthlyDeliveryPrice: 250000,
		Servings:             "4-6 people",
		Features: []string{
			"Everything in Standard",
			"Premium cuts and seafood",
			"Imported specialty items",
			"Priority Saturday delivery",
		},
	},
}

// Packages returns the catalog in listing order.
func Packages() []Package {
	out := make([]Package, len(packages))
	copy(out, packages)
	return out
}

// ByTier resolves a tier name case-insensitively.
func ByTier(tier string) (Package, bool) {
	t := strings.ToLower(strings.TrimSpace(tier))
	for _, p := range packages {
		if p.Tier == t {
			return p, true
		}
	}
	return Package{}, false
}

// IsValidTier reports whether tier names a known package.
func IsValidTier(tier string) bool {
	_, ok := ByTier(tier)
	return ok
}

// IsValidCycle reports whether cycle is a supported billing cycle.
func IsValidCycle(cycle string) bool {
	switch NormalizeCycle(cycle) {
	case CycleWeekly, CycleMonthly:
		return true
	default:
		return false
	}
}

// NormalizeCycle lowercases and trims a billing cycle value.
func NormalizeCycle(cycle string) string {
	return strings.ToLower(strings.TrimSpace(cycle))
}

// PriceFor returns the monthly charge for a tier under a delivery cadence.
// The weekly cadence price is NOT a per-week amount; both values are billed
// monthly.
func PriceFor(tier, cycle string) (int64, bool) {
	p, ok := ByTier(tier)
	if !ok {
		return 0, false
	}
	switch NormalizeCycle(cycle) {
	case CycleWeekly:
		return p.WeeklyDeliveryPrice, true
	case CycleMonthly:
		return p.MonthlyDeliveryPrice, true
	default:
		return 0, false
	}
}

// DeliveriesPerMonth returns how many deliveries a cadence entitles to.
func DeliveriesPerMonth(cycle string) int {
	if NormalizeCycle(cycle) == CycleWeekly {
		return 4
	}
	return 1
}

// NextDeliveryDate returns the next Saturday on or after from. All
// deliveries land on Saturdays, whatever day triggered the scheduling.
func NextDeliveryDate(from time.Time) time.Time {
	d := (int(time.Saturday) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, d)
}
