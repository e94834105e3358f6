package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClock(t *testing.T) {
	start := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	fake := NewFake(start)

	assert.True(t, fake.Now().Equal(start))

	fake.Advance(2 * time.Hour)
	assert.True(t, fake.Now().Equal(start.Add(2*time.Hour)))

	later := start.Add(48 * time.Hour)
	fake.Set(later)
	assert.True(t, fake.Now().Equal(later))
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	got := System().Now()
	assert.False(t, got.Before(before))
}
