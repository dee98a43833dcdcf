package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTodayTruncatesToUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	c := NewFakeClock(time.Date(2024, 3, 2, 5, 30, 0, 0, loc))

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Today(c))

	c.Advance(24 * time.Hour)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Today(c))

	c.Set(time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2025-01-01", Today(c).Format("2006-01-02"))
}
