package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTodayDateString(t *testing.T) {
	assert.Equal(t, time.Now().Format("2006-01-02"), TodayDateString())
}

func TestDateRangeForToday(t *testing.T) {
	s := TodayDateString()
	assert.Equal(t, s+" to "+s, DateRangeForToday())
}

func TestParseDate(t *testing.T) {
	got := ParseDate("2024-12-01 18:30:00")
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.December, got.Month())
	assert.Equal(t, 1, got.Day())

	assert.True(t, ParseDate("not-a-date").IsZero())
	assert.True(t, ParseDate("").IsZero())
}

func TestNowLayout(t *testing.T) {
	_, err := time.Parse(StampLayout, Now())
	assert.NoError(t, err)
}
