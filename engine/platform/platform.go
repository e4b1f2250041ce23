package platform

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spaghettifunk/glengine/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// API selects the client API the window surface is created for.
type API uint8

const (
	APIGLES API = iota
	APIVulkan
)

func (a API) String() string {
	switch a {
	case APIVulkan:
		return "vulkan"
	default:
		return "gles"
	}
}

func ParseAPI(s string) (API, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gles", "opengles":
		return APIGLES, nil
	case "vulkan", "vk":
		return APIVulkan, nil
	default:
		return APIGLES, fmt.Errorf("unknown client api %q: %w", s, core.ErrInvalidConfig)
	}
}

// WindowFlag selects framebuffer attributes. Flags can be or'ed together.
type WindowFlag uint32

const (
	// RGB color buffer
	WindowRGB WindowFlag = 0
	// ALPHA color buffer
	WindowAlpha WindowFlag = 1 << (iota - 1)
	// depth buffer
	WindowDepth
	// stencil buffer
	WindowStencil
	// multi-sample buffer
	WindowMultisample
)

func (f WindowFlag) Has(flag WindowFlag) bool {
	return f&flag == flag
}

// ParseWindowFlags converts the flag names used in the configuration file.
func ParseWindowFlags(names []string) (WindowFlag, error) {
	flags := WindowRGB
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "rgb":
		case "alpha":
			flags |= WindowAlpha
		case "depth":
			flags |= WindowDepth
		case "stencil":
			flags |= WindowStencil
		case "multisample":
			flags |= WindowMultisample
		default:
			return WindowRGB, fmt.Errorf("unknown window flag %q: %w", n, core.ErrInvalidConfig)
		}
	}
	return flags, nil
}

type WindowConfig struct {
	Title        string
	PosX         int
	PosY         int
	Width        int
	Height       int
	API          API
	Flags        WindowFlag
	SwapInterval int
}

// WindowSystem opens the drawing surface and its rendering context and feeds
// window input into the engine. All methods must be called from the main thread.
type WindowSystem interface {
	Startup(cfg *WindowConfig, input *core.InputSystem) error
	// PumpMessages processes pending window events. It returns false once the
	// window has been asked to close.
	PumpMessages() bool
	SwapBuffers()
	FramebufferSize() (int, int)
	Shutdown() error
}

// ExtensionProvider is implemented by window systems that need instance
// extensions enabled to present to their surface.
type ExtensionProvider interface {
	RequiredExtensionNames() []string
}
