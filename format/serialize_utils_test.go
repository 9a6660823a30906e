package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatToFixedWidthString(t *testing.T) {
	assert.Equal(t, "     0.2", FloatToFixedWidthString(0.2, 8))
	assert.Equal(t, "    -550", FloatToFixedWidthString(-550, 8))
	assert.Equal(t, "       0", FloatToFixedWidthString(0, 8))
	assert.Equal(t, "ab  ", PadRight("ab", 4))
}
