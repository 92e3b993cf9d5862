package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock_UTC(t *testing.T) {
	now := System().Now()
	assert.Equal(t, time.UTC, now.Location())
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	c := Fixed(instant)

	// Frozen and normalized to UTC
	assert.Equal(t, instant.UTC(), c.Now())
	assert.Equal(t, time.UTC, c.Now().Location())
	assert.Equal(t, c.Now(), c.Now())
}
