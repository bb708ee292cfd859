package stats

import (
	"fmt"
	"time"
)

// Period selects the reporting window for admission counts. The window is
// half-open, [Start(now), now).
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod validates a query-string period, defaulting to today.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodToday, nil
	case PeriodToday, PeriodWeek, PeriodMonth:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q (want today, week or month)", s)
}

// Start returns the window's lower bound in now's location: midnight today,
// midnight of the most recent Sunday, or midnight on the first of the month.
func (p Period) Start(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodWeek:
		return midnight.AddDate(0, 0, -int(now.Weekday()))
	case PeriodMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	default:
		return midnight
	}
}
