package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/glengine/engine/core"
	"github.com/spaghettifunk/glengine/engine/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
name = "Hello Triangle"
log_level = "debug"
target_fps = 30
metrics_addr = ":9100"

[window]
pos_x = 10
pos_y = 20
width = 800
height = 600
api = "vulkan"
flags = ["rgb", "depth", "multisample"]

[extensions]
required = ["VK_EXT_debug_utils"]
`

func TestParseApplicationConfig(t *testing.T) {
	cfg, err := ParseApplicationConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "Hello Triangle", cfg.Name)
	assert.Equal(t, core.DebugLevel, cfg.Level())
	assert.Equal(t, 30, cfg.TargetFPS)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, []string{"VK_EXT_debug_utils"}, cfg.Extensions.Required)
	// untouched keys keep their defaults
	assert.Zero(t, cfg.MaxDeltaTime)
	assert.True(t, cfg.QuitOnEscape)
	assert.Equal(t, 1, cfg.Window.SwapInterval)

	wc, err := cfg.WindowConfig()
	require.NoError(t, err)
	assert.Equal(t, &platform.WindowConfig{
		Title:        "Hello Triangle",
		PosX:         10,
		PosY:         20,
		Width:        800,
		Height:       600,
		API:          platform.APIVulkan,
		Flags:        platform.WindowDepth | platform.WindowMultisample,
		SwapInterval: 1,
	}, wc)
}

func TestParseApplicationConfigDefaults(t *testing.T) {
	cfg, err := ParseApplicationConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultApplicationConfig(), cfg)
}

func TestParseApplicationConfigMaxDeltaTime(t *testing.T) {
	cfg, err := ParseApplicationConfig([]byte(`max_delta_time = 0.0`))
	require.NoError(t, err, "zero disables the clamp")
	assert.Zero(t, cfg.MaxDeltaTime)

	cfg, err = ParseApplicationConfig([]byte(`max_delta_time = 0.1`))
	require.NoError(t, err)
	assert.Equal(t, 0.1, cfg.MaxDeltaTime)
}

func TestParseApplicationConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":        `name = `,
		"size":          "[window]\nwidth = 0",
		"fps":           `target_fps = -1`,
		"delta":         `max_delta_time = -0.5`,
		"log level":     `log_level = "verbose"`,
		"api":           "[window]\napi = \"metal\"",
		"window flag":   "[window]\nflags = [\"hdr\"]",
		"negative size": "[window]\nheight = -10",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseApplicationConfig([]byte(data))
			assert.ErrorIs(t, err, core.ErrInvalidConfig)
		})
	}
}

func TestLoadApplicationConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello Triangle", cfg.Name)

	_, err = LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
