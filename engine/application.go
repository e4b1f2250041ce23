package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/glengine/engine/core"
	"github.com/spaghettifunk/glengine/engine/platform"
)

type ApplicationConfig struct {
	// The application name used in windowing, if applicable.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Frames per second the loop is limited to. Zero disables the limit.
	TargetFPS int `toml:"target_fps"`
	// Upper bound, in seconds, of the delta handed to the update callback.
	// Zero hands over the measured wall-clock delta untouched.
	MaxDeltaTime float64 `toml:"max_delta_time"`
	// Escape fires the application quit event instead of reaching the key callback.
	QuitOnEscape bool `toml:"quit_on_escape"`
	// Address serving Prometheus metrics, empty disables it.
	MetricsAddr string `toml:"metrics_addr"`
	// Reload the configuration file when it changes on disk.
	Watch bool `toml:"watch"`

	Window     WindowSettings    `toml:"window"`
	Extensions ExtensionSettings `toml:"extensions"`
}

type WindowSettings struct {
	// Window starting position x axis, if applicable.
	PosX int `toml:"pos_x"`
	// Window starting position y axis, if applicable.
	PosY int `toml:"pos_y"`
	// Window starting width, if applicable.
	Width int `toml:"width"`
	// Window starting height, if applicable.
	Height       int      `toml:"height"`
	API          string   `toml:"api"`
	Flags        []string `toml:"flags"`
	SwapInterval int      `toml:"swap_interval"`
}

type ExtensionSettings struct {
	Required []string `toml:"required"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:         "glengine",
		LogLevel:     "info",
		TargetFPS:    60,
		MaxDeltaTime: 0,
		QuitOnEscape: true,
		Window: WindowSettings{
			PosX:         100,
			PosY:         100,
			Width:        1280,
			Height:       720,
			API:          "gles",
			Flags:        []string{"rgb"},
			SwapInterval: 1,
		},
	}
}

// LoadApplicationConfig reads a TOML file on top of the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseApplicationConfig(data)
}

func ParseApplicationConfig(data []byte) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", core.ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.TargetFPS < 0 {
		return fmt.Errorf("%w: target_fps must not be negative", core.ErrInvalidConfig)
	}
	if c.MaxDeltaTime < 0 {
		return fmt.Errorf("%w: max_delta_time must not be negative", core.ErrInvalidConfig)
	}
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", core.ErrInvalidConfig, c.LogLevel)
	}
	if _, err := c.WindowConfig(); err != nil {
		return err
	}
	return nil
}

func (c *ApplicationConfig) Level() core.LogLevel {
	level, err := core.ParseLogLevel(c.LogLevel)
	if err != nil {
		return core.InfoLevel
	}
	return level
}

// WindowConfig builds the window system configuration. Title, position and
// size are taken from the configuration and can be overridden by Create.
func (c *ApplicationConfig) WindowConfig() (*platform.WindowConfig, error) {
	api, err := platform.ParseAPI(c.Window.API)
	if err != nil {
		return nil, err
	}
	flags, err := platform.ParseWindowFlags(c.Window.Flags)
	if err != nil {
		return nil, err
	}
	return &platform.WindowConfig{
		Title:        c.Name,
		PosX:         c.Window.PosX,
		PosY:         c.Window.PosY,
		Width:        c.Window.Width,
		Height:       c.Window.Height,
		API:          api,
		Flags:        flags,
		SwapInterval: c.Window.SwapInterval,
	}, nil
}
