package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0.25), Clamp(float32(3), 0, 0.25))
	assert.Equal(t, float32(0), Clamp(float32(-1), 0, 0.25))
	assert.Equal(t, float32(0.1), Clamp(float32(0.1), 0, 0.25))
	assert.Equal(t, 5, Clamp(5, 1, 10))
}
