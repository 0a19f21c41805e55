package market

import (
	"testing"
	"time"
)

func mustCalendar(t *testing.T, holidays []string) *Calendar {
	t.Helper()
	cal, err := NewCalendar("09:30", "15:30", holidays)
	if err != nil {
		t.Fatalf("NewCalendar: %v", err)
	}
	return cal
}

func TestIsTradingAt(t *testing.T) {
	cal := mustCalendar(t, []string{"2025-08-26"})

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"weekday just after open", time.Date(2025, 8, 25, 9, 31, 0, 0, time.UTC), true},
		{"weekday at open", time.Date(2025, 8, 25, 9, 30, 0, 0, time.UTC), true},
		{"weekday before open", time.Date(2025, 8, 25, 9, 29, 0, 0, time.UTC), false},
		{"weekday at close minute", time.Date(2025, 8, 25, 15, 30, 59, 0, time.UTC), true},
		{"weekday after close", time.Date(2025, 8, 25, 15, 31, 0, 0, time.UTC), false},
		{"saturday", time.Date(2025, 8, 23, 12, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2025, 8, 24, 12, 0, 0, 0, time.UTC), false},
		{"holiday tuesday", time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cal.IsTradingAt(tc.at); got != tc.want {
				t.Errorf("IsTradingAt(%s) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestNewCalendarRejectsBadInput(t *testing.T) {
	if _, err := NewCalendar("9am", "15:30", nil); err == nil {
		t.Error("bad open clock accepted")
	}
	if _, err := NewCalendar("09:30", "15:30", []string{"not-a-date"}); err == nil {
		t.Error("bad holiday date accepted")
	}
}
