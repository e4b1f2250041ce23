package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/glengine/engine/core"
	"github.com/stretchr/testify/assert"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want core.KeyCode
	}{
		{glfw.KeyA, core.KEY_A},
		{glfw.KeyZ, core.KEY_Z},
		{glfw.Key0, core.KEY_0},
		{glfw.Key9, core.KEY_9},
		{glfw.KeyF1, core.KEY_F1},
		{glfw.KeyF24, core.KEY_F24},
		{glfw.KeyKP3, core.KEY_NUMPAD3},
		{glfw.KeyEscape, core.KEY_ESCAPE},
		{glfw.KeySpace, core.KEY_SPACE},
		{glfw.KeyEnter, core.KEY_ENTER},
		{glfw.KeyPageUp, core.KEY_PRIOR},
	}
	for _, tt := range tests {
		got, ok := TranslateKey(tt.key)
		assert.True(t, ok, "key %d", tt.key)
		assert.Equal(t, tt.want, got, "key %d", tt.key)
	}

	_, ok := TranslateKey(glfw.KeyUnknown)
	assert.False(t, ok)
}

func TestParseWindowFlags(t *testing.T) {
	flags, err := ParseWindowFlags([]string{"rgb", "Depth", "stencil"})
	assert.NoError(t, err)
	assert.True(t, flags.Has(WindowDepth))
	assert.True(t, flags.Has(WindowStencil))
	assert.False(t, flags.Has(WindowAlpha))
	assert.False(t, flags.Has(WindowMultisample))
	assert.Equal(t, WindowFlag(6), flags)

	_, err = ParseWindowFlags([]string{"hdr"})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestParseAPI(t *testing.T) {
	api, err := ParseAPI("")
	assert.NoError(t, err)
	assert.Equal(t, APIGLES, api)

	api, err = ParseAPI("Vulkan")
	assert.NoError(t, err)
	assert.Equal(t, APIVulkan, api)
	assert.Equal(t, "vulkan", api.String())

	_, err = ParseAPI("metal")
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}
