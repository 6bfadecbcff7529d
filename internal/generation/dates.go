package generation

import (
	"time"

	"github.com/alexanderramin/execview/internal/domain"
)

// GenerateDates returns count calendar dates in ascending order, the last
// one being the calendar day of now. Each earlier element lies exactly one
// unit of g before its successor. Month-based units clamp to the end of
// the target month, so 31 March steps back to 28 or 29 February.
func GenerateDates(g domain.Granularity, count int, now time.Time) []time.Time {
	if count <= 0 {
		return []time.Time{}
	}
	today := CalendarDay(now)
	dates := make([]time.Time, count)
	for k := 0; k < count; k++ {
		dates[count-1-k] = stepBack(today, g, k)
	}
	return dates
}

// CalendarDay drops the clock part of t, keeping its calendar date as-is.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func stepBack(day time.Time, g domain.Granularity, k int) time.Time {
	switch g {
	case domain.Daily:
		return day.AddDate(0, 0, -k)
	case domain.Weekly:
		return day.AddDate(0, 0, -7*k)
	case domain.Quarterly:
		return shiftMonths(day, -3*k)
	case domain.Annually:
		return shiftMonths(day, -12*k)
	default:
		return shiftMonths(day, -k)
	}
}

func shiftMonths(day time.Time, months int) time.Time {
	first := time.Date(day.Year(), day.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	return time.Date(first.Year(), first.Month(), min(day.Day(), lastDay), 0, 0, 0, 0, time.UTC)
}
