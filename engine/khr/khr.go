// Package khr resolves Khronos API extensions for the surface created by the
// window system.
package khr

import (
	"fmt"
	"sort"

	"github.com/spaghettifunk/glengine/engine/core"
	"github.com/spaghettifunk/glengine/engine/platform"
)

// Loader is the extension-loader collaborator of the engine.
type Loader interface {
	// Load verifies every required extension is available. It must be called
	// after the window system created the surface.
	Load(required []string) error
	IsSupported(name string) bool
	// Extensions lists the extensions known to be available.
	Extensions() []string
	Shutdown()
}

// New returns the loader matching the client api of the window.
func New(api platform.API) Loader {
	switch api {
	case platform.APIVulkan:
		return NewVulkan()
	default:
		return NewGLES()
	}
}

// checkRequired returns an error naming every missing extension.
func checkRequired(required []string, supported func(string) bool) error {
	var missing []string
	for _, name := range required {
		if !supported(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %v", core.ErrExtensionMissing, missing)
	}
	return nil
}
