package subscription

import (
	"testing"
	"time"
)

func TestFirstDeliveryDateWeekly(t *testing.T) {
	// Wednesday 2026-01-07: next Saturday is the 10th.
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)
	got := firstDeliveryDate("weekly", now)
	if got.Weekday() != time.Saturday {
		t.Fatalf("weekday = %v, want Saturday", got.Weekday())
	}
	if got.Day() != 10 || got.Month() != time.January {
		t.Errorf("date = %v, want 2026-01-10", got)
	}
}

func TestFirstDeliveryDateMonthlyClampsIntoMonth(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantYear  int
		wantMonth time.Month
		wantDay   int
	}{
		{
			// Next Saturday falls inside the same month: keep it.
			name:      "mid month",
			now:       time.Date(2026, 1, 7, 9, 0, 0, 0, time.UTC),
			wantYear:  2026, wantMonth: time.January, wantDay: 10,
		},
		{
			// Saturday Jan 31 starts a weekend that spills into February;
			// next Saturday from Jan 28 is the 31st, still January.
			name:      "last saturday of month",
			now:       time.Date(2026, 1, 28, 9, 0, 0, 0, time.UTC),
			wantYear:  2026, wantMonth: time.January, wantDay: 31,
		},
		{
			// From Sunday Feb 1 the next Saturday is Feb 7, same month.
			name:      "early month",
			now:       time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
			wantYear:  2026, wantMonth: time.February, wantDay: 7,
		},
		{
			// June 28 2026 is a Sunday; next Saturday is July 4, which
			// leaves June, so the schedule lands on July's first Saturday.
			name:      "rolls to next month",
			now:       time.Date(2026, 6, 28, 9, 0, 0, 0, time.UTC),
			wantYear:  2026, wantMonth: time.July, wantDay: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := firstDeliveryDate("monthly", tt.now)
			if got.Weekday() != time.Saturday {
				t.Fatalf("weekday = %v, want Saturday", got.Weekday())
			}
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("date = %v, want %d-%02d-%02d", got, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
		})
	}
}

func TestNextBillingDateOneMonthOut(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	got := nextBillingDate(now)
	if got.Month() != time.April || got.Day() != 15 {
		t.Errorf("nextBillingDate = %v, want 2026-04-15", got)
	}
}
