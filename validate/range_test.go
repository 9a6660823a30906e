package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRanges(t *testing.T) {
	assert.True(t, InRange(0, 1, 1))
	assert.False(t, InRange(0, 1, 1.1))
	assert.True(t, InRange2PI(2*math.Pi))
	assert.True(t, NonNegative(0))
	assert.False(t, NonNegative(math.NaN()))
	assert.False(t, NonNegativeAll([]float64{1, 2, -0.5}))
	assert.True(t, NonNegativeAll(nil))
	assert.False(t, Positive(0))
	assert.True(t, AlmostEqual(0.1+0.2, 0.3))
}
