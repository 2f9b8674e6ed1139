package catalog

import (
	"testing"
	"time"
)

func TestByTierCaseInsensitive(t *testing.T) {
	for _, tier := range []string{"standard", "STANDARD", " Standard "} {
		p, ok := ByTier(tier)
		if !ok {
			t.Fatalf("expected tier %q to resolve", tier)
		}
		if p.Tier != TierStandard {
			t.Fatalf("resolved wrong package %q for input %q", p.Tier, tier)
		}
	}

	if _, ok := ByTier("family"); ok {
		t.Fatal("unknown tier must not resolve")
	}
}

func TestPriceFor(t *testing.T) {
	tests := []struct {
		tier  string
		cycle string
		want  int64
	}{
		{tier: "essentials", cycle: "weekly", want: 80000},
		{tier: "essentials", cycle: "monthly", want: 70000},
		{tier: "standard", cycle: "weekly", want: 140000},
		{tier: "standard", cycle: "monthly", want: 110000},
		{tier: "premium", cycle: "weekly", want: 320000},
		{tier: "premium", cycle: "monthly", want: 250000},
	}

	for _, tt := range tests {
		got, ok := PriceFor(tt.tier, tt.cycle)
		if !ok {
			t.Fatalf("PriceFor(%q, %q) did not resolve", tt.tier, tt.cycle)
		}
		if got != tt.want {
			t.Fatalf("PriceFor(%q, %q) = %d, want %d", tt.tier, tt.cycle, got, tt.want)
		}
	}

	if _, ok := PriceFor("standard", "yearly"); ok {
		t.Fatal("unsupported cycle must not resolve")
	}
	if _, ok := PriceFor("gold", "monthly"); ok {
		t.Fatal("unknown tier must not resolve")
	}
}

func TestDeliveriesPerMonth(t *testing.T) {
	if got := DeliveriesPerMonth("weekly"); got != 4 {
		t.Fatalf("weekly cadence = %d deliveries, want 4", got)
	}
	if got := DeliveriesPerMonth("monthly"); got != 1 {
		t.Fatalf("monthly cadence = %d deliveries, want 1", got)
	}
}

func TestNextDeliveryDate(t *testing.T) {
	tests := []struct {
		name    string
		from    time.Time
		wantDay int
	}{
		// 2026-09-05 is a Saturday.
		{"saturday stays put", time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC), 5},
		{"sunday waits a week", time.Date(2026, 9, 6, 9, 0, 0, 0, time.UTC), 12},
		{"wednesday rolls forward", time.Date(2026, 9, 9, 9, 0, 0, 0, time.UTC), 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDeliveryDate(tt.from)
			if got.Weekday() != time.Saturday {
				t.Fatalf("weekday = %v, want Saturday", got.Weekday())
			}
			if got.Day() != tt.wantDay {
				t.Errorf("day = %d, want %d", got.Day(), tt.wantDay)
			}
		})
	}
}

func TestPackagesIsACopy(t *testing.T) {
	pkgs := Packages()
	pkgs[0].Name = "mutated"
	if Packages()[0].Name == "mutated" {
		t.Fatal("Packages must return a copy of the catalog")
	}
}
