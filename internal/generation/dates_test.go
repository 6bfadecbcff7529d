package generation

import (
	"testing"
	"time"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, s)
	require.NoError(t, err)
	return d
}

func formatDates(ds []time.Time) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Format(domain.DateLayout)
	}
	return out
}

func TestGenerateDates_Daily(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	got := GenerateDates(domain.Daily, 3, now)

	assert.Equal(t, []string{"2024-01-13", "2024-01-14", "2024-01-15"}, formatDates(got))
}

func TestGenerateDates_Weekly(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	got := GenerateDates(domain.Weekly, 3, now)

	assert.Equal(t, []string{"2024-01-01", "2024-01-08", "2024-01-15"}, formatDates(got))
}

func TestGenerateDates_QuarterlyAndAnnually(t *testing.T) {
	now := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	assert.Equal(t,
		[]string{"2023-11-20", "2024-02-20", "2024-05-20"},
		formatDates(GenerateDates(domain.Quarterly, 3, now)))
	assert.Equal(t,
		[]string{"2022-05-20", "2023-05-20", "2024-05-20"},
		formatDates(GenerateDates(domain.Annually, 3, now)))
}

func TestGenerateDates_MonthlyClampsToMonthEnd(t *testing.T) {
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	got := GenerateDates(domain.Monthly, 4, now)

	assert.Equal(t, []string{"2023-12-31", "2024-01-31", "2024-02-29", "2024-03-31"}, formatDates(got))
}

func TestGenerateDates_ZeroOrNegativeCount(t *testing.T) {
	now := time.Now()
	assert.Empty(t, GenerateDates(domain.Monthly, 0, now))
	assert.Empty(t, GenerateDates(domain.Daily, -3, now))
}

func TestGenerateDates_StrictlyAscendingEndingToday(t *testing.T) {
	now := time.Date(2025, 8, 31, 23, 59, 0, 0, time.UTC)

	for _, g := range domain.AllGranularities {
		t.Run(string(g), func(t *testing.T) {
			got := GenerateDates(g, g.SeriesLength(), now)
			require.Len(t, got, g.SeriesLength())
			assert.Equal(t, "2025-08-31", got[len(got)-1].Format(domain.DateLayout))
			for i := 1; i < len(got); i++ {
				assert.True(t, got[i-1].Before(got[i]), "dates[%d]=%s !< dates[%d]=%s", i-1, got[i-1], i, got[i])
			}
		})
	}
}

func TestCalendarDay_KeepsLocalDate(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, 6, 1, 1, 0, 0, 0, loc)

	assert.Equal(t, day(t, "2024-06-01"), CalendarDay(now))
}
