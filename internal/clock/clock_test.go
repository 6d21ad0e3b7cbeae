package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_NowUsesShopTimezone(t *testing.T) {
	c, err := New("Asia/Yerevan")
	require.NoError(t, err)

	// 22:30 UTC это уже 02:30 следующего дня в Ереване (UTC+4)
	utc := time.Date(2026, 10, 14, 22, 30, 0, 0, time.UTC)
	c.now = func() time.Time { return utc }

	now := c.Now()
	assert.Equal(t, 2, now.Hour())
	assert.Equal(t, 15, now.Day())

	today := c.Today()
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, c.Location()), today)
}

func TestClock_DayBounds(t *testing.T) {
	loc := time.FixedZone("AMT", 4*60*60)
	c := NewFixed(time.Date(2026, 10, 14, 14, 30, 0, 0, loc))

	start, end := c.DayBounds(c.Now())
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, loc), end)

}

func TestClock_NewFuncFollowsSource(t *testing.T) {
	loc := time.FixedZone("AMT", 4*60*60)
	now := time.Date(2026, 10, 14, 19, 30, 0, 0, time.UTC)
	c := NewFunc(loc, func() time.Time { return now })

	assert.Equal(t, loc, c.Now().Location())
	assert.Equal(t, time.Date(2026, 10, 14, 23, 30, 0, 0, loc), c.Now())
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, loc), c.Today())

	now = now.Add(time.Hour)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, loc), c.Today())
}

func TestClock_ParseDate(t *testing.T) {
	loc := time.FixedZone("AMT", 4*60*60)
	c := NewFixed(time.Date(2026, 10, 14, 8, 0, 0, 0, loc))

	d, err := c.ParseDate("2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, loc), d)

	_, err = c.ParseDate("20.10.2026")
	assert.Error(t, err)
}

func TestNew_UnknownTimezone(t *testing.T) {
	_, err := New("Mars/Olympus")
	assert.Error(t, err)
}
