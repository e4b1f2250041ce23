package khr

import (
	"sort"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/glengine/engine/core"
)

// GLES resolves extensions against the current OpenGL ES context.
type GLES struct {
	loaded []string
	procs  map[string]unsafe.Pointer
}

func NewGLES() *GLES {
	return &GLES{
		procs: make(map[string]unsafe.Pointer),
	}
}

func (g *GLES) Load(required []string) error {
	if glfw.GetCurrentContext() == nil {
		return core.ErrNotCreated
	}
	if err := checkRequired(required, glfw.ExtensionSupported); err != nil {
		return err
	}
	g.loaded = append(g.loaded[:0], required...)
	sort.Strings(g.loaded)
	for _, name := range g.loaded {
		core.LogInfo("extension `%s` available", name)
	}
	return nil
}

func (g *GLES) IsSupported(name string) bool {
	if glfw.GetCurrentContext() == nil {
		return false
	}
	return glfw.ExtensionSupported(name)
}

func (g *GLES) Extensions() []string {
	return append([]string(nil), g.loaded...)
}

// ProcAddress resolves an entry point of the current context. Results are
// cached, nil means the entry point is not provided.
func (g *GLES) ProcAddress(name string) unsafe.Pointer {
	if p, ok := g.procs[name]; ok {
		return p
	}
	p := glfw.GetProcAddress(name)
	if p != nil {
		g.procs[name] = p
	} else {
		core.LogWarn("entry point `%s` could not be resolved", name)
	}
	return p
}

func (g *GLES) Shutdown() {
	g.loaded = nil
	g.procs = make(map[string]unsafe.Pointer)
}
