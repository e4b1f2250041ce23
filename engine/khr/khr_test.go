package khr

import (
	"testing"

	"github.com/spaghettifunk/glengine/engine/core"
	"github.com/spaghettifunk/glengine/engine/platform"
	"github.com/stretchr/testify/assert"
)

func TestCheckRequired(t *testing.T) {
	have := map[string]bool{"VK_KHR_surface": true, "VK_KHR_xcb_surface": true}
	supported := func(name string) bool { return have[name] }

	assert.NoError(t, checkRequired(nil, supported))
	assert.NoError(t, checkRequired([]string{"VK_KHR_surface"}, supported))

	err := checkRequired([]string{"VK_KHR_surface", "VK_EXT_debug_utils", "VK_EXT_a"}, supported)
	assert.ErrorIs(t, err, core.ErrExtensionMissing)
	assert.Contains(t, err.Error(), "[VK_EXT_a VK_EXT_debug_utils]")
}

func TestExtensionName(t *testing.T) {
	raw := make([]byte, 16)
	copy(raw, "VK_KHR_surface")
	assert.Equal(t, "VK_KHR_surface", extensionName(raw))
	assert.Equal(t, "abc", extensionName([]byte("abc")))
	assert.Equal(t, "", extensionName([]byte{0, 'a'}))
}

func TestVulkanLookupBeforeLoad(t *testing.T) {
	v := NewVulkan()
	assert.False(t, v.IsSupported("VK_KHR_surface"))
	assert.Empty(t, v.Extensions())

	v.available["b"] = 1
	v.available["a"] = 1
	assert.Equal(t, []string{"a", "b"}, v.Extensions())
	v.Shutdown()
	assert.Empty(t, v.Extensions())
}

func TestNewSelectsLoader(t *testing.T) {
	assert.IsType(t, &GLES{}, New(platform.APIGLES))
	assert.IsType(t, &Vulkan{}, New(platform.APIVulkan))
}
