package timezone_test

import (
	"lankaride/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestParseDate(t *testing.T) {
	day, err := timezone.ParseDate("2025-03-14")

	assert.NoError(t, err)
	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 14, day.Day())
	assert.Equal(t, 0, day.Hour())

	_, err = timezone.ParseDate("14/03/2025")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 3, 14, 17, 45, 12, 99, timezone.GetLocation())
	got := timezone.StartOfDay(in)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, timezone.GetLocation()), got)
	assert.True(t, timezone.Today().Equal(timezone.StartOfDay(timezone.Now())))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", timezone.Format(time.Time{}, time.DateOnly))

	day, _ := timezone.ParseDate("2025-12-31")
	assert.Equal(t, "2025-12-31", timezone.Format(day, time.DateOnly))
}

func TestCalendarDay(t *testing.T) {
	fromDB := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got := timezone.CalendarDay(fromDB)

	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, timezone.GetLocation(), got.Location())
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", timezone.FormatDate(time.Time{}))
	assert.Equal(t, "2025-06-01", timezone.FormatDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
}
