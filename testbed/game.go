package testbed

import (
	"unsafe"

	"github.com/spaghettifunk/glengine/engine"
	"github.com/spaghettifunk/glengine/engine/core"
	"github.com/spaghettifunk/glengine/engine/khr"
)

// Degrees per second.
const rotationSpeed = 40.0

// Core ES entry points a usable context must expose. Initialize only checks
// that they resolve; drawing is left to applications built on the engine.
var requiredEntryPoints = []string{"glClear", "glClearColor", "glViewport"}

type gameState struct {
	Angle   float32
	Elapsed float32
	Frames  uint64
	Paused  bool
	LastKey byte
}

type TestGame struct {
	engine *engine.Engine
	state  *gameState
}

func NewTestGame(e *engine.Engine) *TestGame {
	tg := &TestGame{
		engine: e,
		state:  &gameState{},
	}
	e.SetUserData(tg.state)

	e.RegisterUpdateFunc(tg.Update)
	e.RegisterDrawFunc(tg.Draw)
	e.RegisterKeyFunc(tg.Key)
	e.RegisterShutdownFunc(tg.Shutdown)

	return tg
}

// Initialize runs after Create, when the context is current.
func (g *TestGame) Initialize() {
	core.LogDebug("TestGame Initialize fn....")

	gl, ok := g.engine.Khr().(*khr.GLES)
	if !ok {
		core.LogInfo("extensions: %v", g.engine.Khr().Extensions())
		return
	}
	if missing := missingEntryPoints(gl.ProcAddress); len(missing) > 0 {
		core.LogWarn("context is missing entry points %v", missing)
		return
	}
	core.LogInfo("context exposes all %d required entry points", len(requiredEntryPoints))
}

func missingEntryPoints(lookup func(string) unsafe.Pointer) []string {
	var missing []string
	for _, name := range requiredEntryPoints {
		if lookup(name) == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

func stateOf(ctx *engine.Context) *gameState {
	s, ok := ctx.UserData.(*gameState)
	if !ok {
		core.LogError("unexpected user data %T", ctx.UserData)
		return &gameState{}
	}
	return s
}

func (g *TestGame) Update(ctx *engine.Context, deltaTime float32) {
	s := stateOf(ctx)
	s.Elapsed += deltaTime
	if s.Paused {
		return
	}
	s.Angle += rotationSpeed * deltaTime
	for s.Angle >= 360 {
		s.Angle -= 360
	}
}

func (g *TestGame) Draw(ctx *engine.Context) {
	s := stateOf(ctx)
	s.Frames++
	if s.Frames%600 == 0 {
		core.LogDebug("frame %d: angle %.1f, viewport %dx%d", s.Frames, s.Angle, ctx.Width, ctx.Height)
	}
}

func (g *TestGame) Key(ctx *engine.Context, key byte, x, y int) {
	s := stateOf(ctx)
	s.LastKey = key
	switch key {
	case byte(core.KEY_P), byte(core.KEY_SPACE):
		s.Paused = !s.Paused
		core.LogInfo("rotation paused: %t", s.Paused)
	default:
		core.LogInfo("'%c' key pressed in window at %d,%d.", key, x, y)
	}
}

func (g *TestGame) Shutdown(ctx *engine.Context) {
	s := stateOf(ctx)
	core.LogInfo("shutting down testbed after %d frames (%.1fs)", s.Frames, s.Elapsed)
}
