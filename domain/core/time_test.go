package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestampArithmetic(t *testing.T) {
	base := NewTimestamp(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	later := base.Add(90 * time.Second)

	assert.True(t, base.Before(later))
	assert.False(t, later.Before(base))
	assert.False(t, base.Before(base))
	assert.True(t, later.Add(-90*time.Second).Before(later))
	assert.True(t, base.Before(Now()))
}
