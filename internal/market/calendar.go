package market

import (
	"fmt"
	"time"
)

// Calendar decides whether the simulated market is live at a given instant:
// Monday through Friday, inside the open/close window (minute granularity),
// and not on a listed holiday.
type Calendar struct {
	openHour    int
	openMinute  int
	closeHour   int
	closeMinute int
	holidays    map[string]struct{}
}

// NewCalendar parses "HH:MM" open/close bounds and an ISO-date holiday list.
func NewCalendar(open, close string, holidays []string) (*Calendar, error) {
	oh, om, err := parseClock(open)
	if err != nil {
		return nil, fmt.Errorf("market open: %w", err)
	}
	ch, cm, err := parseClock(close)
	if err != nil {
		return nil, fmt.Errorf("market close: %w", err)
	}

	hs := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		if _, err := time.Parse("2006-01-02", h); err != nil {
			return nil, fmt.Errorf("holiday %q: %w", h, err)
		}
		hs[h] = struct{}{}
	}

	return &Calendar{
		openHour:    oh,
		openMinute:  om,
		closeHour:   ch,
		closeMinute: cm,
		holidays:    hs,
	}, nil
}

// IsTradingAt reports whether t falls inside trading hours. The boundary
// check is minute-granular: 15:30:59 still counts as open.
func (c *Calendar) IsTradingAt(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	if _, ok := c.holidays[t.Format("2006-01-02")]; ok {
		return false
	}

	h, m := t.Hour(), t.Minute()
	afterOpen := h > c.openHour || (h == c.openHour && m >= c.openMinute)
	beforeClose := h < c.closeHour || (h == c.closeHour && m <= c.closeMinute)
	return afterOpen && beforeClose
}

func parseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}
