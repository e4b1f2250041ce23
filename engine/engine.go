package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spaghettifunk/glengine/engine/core"
	"github.com/spaghettifunk/glengine/engine/khr"
	"github.com/spaghettifunk/glengine/engine/math"
	"github.com/spaghettifunk/glengine/engine/platform"
)

// Engine owns the window, the extension loader and the four callback slots
// driven by the frame loop. Create, Loop and the callbacks must run on the
// main thread. Stop and SetTargetFPS are safe from any goroutine.
type Engine struct {
	id           uuid.UUID
	config       *ApplicationConfig
	windowSystem platform.WindowSystem
	khr          khr.Loader
	events       *core.EventSystem
	input        *core.InputSystem
	metrics      *core.Metrics
	clock        *core.Clock
	sleep        func(time.Duration)

	context     *Context
	created     bool
	isSuspended bool
	isRunning   atomic.Bool
	quit        atomic.Bool
	targetFPS   atomic.Int64

	lastTime  time.Duration
	deltatime float32

	// Callbacks
	drawFunc     DrawFunc
	shutdownFunc ShutdownFunc
	updateFunc   UpdateFunc
	keyFunc      KeyFunc
}

type Option func(*Engine)

func WithApplicationConfig(cfg *ApplicationConfig) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.config = cfg
		}
	}
}

func WithMetrics(m *core.Metrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

func WithUserData(data interface{}) Option {
	return func(e *Engine) {
		e.context.UserData = data
	}
}

func withSleep(fn func(time.Duration)) Option {
	return func(e *Engine) {
		e.sleep = fn
	}
}

func New(ws platform.WindowSystem, loader khr.Loader, options ...Option) (*Engine, error) {
	e := &Engine{
		id:           uuid.New(),
		config:       DefaultApplicationConfig(),
		windowSystem: ws,
		khr:          loader,
		clock:        core.NewClock(),
		sleep:        time.Sleep,
		context:      &Context{},
	}
	for _, o := range options {
		o(e)
	}
	if e.metrics == nil {
		// unregistered collectors, nobody scrapes them
		m, err := core.NewMetrics(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create the frame metrics: %w", err)
		}
		e.metrics = m
	}
	e.targetFPS.Store(int64(e.config.TargetFPS))
	return e, nil
}

func (e *Engine) ID() uuid.UUID {
	return e.id
}

func (e *Engine) Context() *Context {
	return e.context
}

func (e *Engine) SetUserData(data interface{}) {
	e.context.UserData = data
}

// Khr returns the extension loader the engine was built with.
func (e *Engine) Khr() khr.Loader {
	return e.khr
}

func (e *Engine) Input() *core.InputSystem {
	return e.input
}

// SetTargetFPS changes the frame limit. Zero or less disables it.
func (e *Engine) SetTargetFPS(fps int) {
	if fps < 0 {
		fps = 0
	}
	e.targetFPS.Store(int64(fps))
}

// ApplyConfig re-applies the settings that can change while the loop runs:
// the log level and the frame limit. Window and extension settings only take
// effect on the next Create.
func (e *Engine) ApplyConfig(cfg *ApplicationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	core.SetLogLevel(cfg.Level())
	e.SetTargetFPS(cfg.TargetFPS)
	return nil
}

func (e *Engine) IsRunning() bool {
	return e.isRunning.Load()
}

// Create opens the window and loads the required extensions. It returns false
// when the size is not positive or a collaborator fails, leaving the engine
// untouched.
func (e *Engine) Create(title string, posX, posY, width, height int) bool {
	if err := e.create(title, posX, posY, width, height); err != nil {
		core.LogError("engine %s: %s", e.id, err)
		return false
	}
	return true
}

func (e *Engine) create(title string, posX, posY, width, height int) error {
	if e.created {
		return core.ErrAlreadyCreated
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", core.ErrInvalidWindowSize, width, height)
	}

	cfg, err := e.config.WindowConfig()
	if err != nil {
		return err
	}
	cfg.Title = title
	cfg.PosX, cfg.PosY = posX, posY
	cfg.Width, cfg.Height = width, height

	events := core.NewEventSystem()
	input := core.NewInputSystem(events)

	if err := e.windowSystem.Startup(cfg, input); err != nil {
		return fmt.Errorf("failed to start the window system: %w", err)
	}

	required := append([]string(nil), e.config.Extensions.Required...)
	if ep, ok := e.windowSystem.(platform.ExtensionProvider); ok {
		required = append(required, ep.RequiredExtensionNames()...)
	}
	if err := e.khr.Load(required); err != nil {
		if serr := e.windowSystem.Shutdown(); serr != nil {
			core.LogWarn("window system shutdown failed: %s", serr)
		}
		return fmt.Errorf("failed to load extensions: %w", err)
	}

	events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	e.events = events
	e.input = input
	e.context.Width, e.context.Height = e.windowSystem.FramebufferSize()
	e.isSuspended = e.context.Width == 0 || e.context.Height == 0
	e.quit.Store(false)
	e.created = true

	core.LogInfo("engine %s created `%s` (%dx%d)", e.id, title, e.context.Width, e.context.Height)
	return nil
}

// Loop runs frames until the window closes, a quit event fires or Stop is
// called. The shutdown callback runs exactly once when it returns.
func (e *Engine) Loop() {
	if !e.created {
		core.LogError("engine %s: %s, call Create first", e.id, core.ErrNotCreated)
		return
	}
	if !e.isRunning.CompareAndSwap(false, true) {
		core.LogWarn("engine %s: loop already running", e.id)
		return
	}

	maxDelta := float32(e.config.MaxDeltaTime)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for !e.quit.Load() {
		frameStartTime := time.Now()

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		e.deltatime = float32((currentTime - e.lastTime).Seconds())
		if maxDelta > 0 {
			e.deltatime = math.Clamp(e.deltatime, 0, maxDelta)
		}
		e.lastTime = currentTime

		if !e.isSuspended {
			e.CallUpdateFunc(e.deltatime)
			e.CallDrawFunc()
			e.windowSystem.SwapBuffers()
		}

		if !e.windowSystem.PumpMessages() {
			e.quit.Store(true)
		}

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded.
		e.input.Update(e.deltatime)

		frameElapsedTime := time.Since(frameStartTime)
		e.metrics.Update(frameElapsedTime)
		e.limitFrame(frameElapsedTime)
	}

	e.shutdown()
}

// Stop asks the loop to exit after the current frame.
func (e *Engine) Stop() {
	e.quit.Store(true)
}

func (e *Engine) limitFrame(frameElapsed time.Duration) {
	fps := e.targetFPS.Load()
	if fps <= 0 {
		return
	}
	// If there is time left, give it back to the OS.
	remaining := time.Second/time.Duration(fps) - frameElapsed
	if remaining > 0 {
		e.sleep(remaining)
	}
}

func (e *Engine) shutdown() {
	e.CallShutdownFunc()

	if err := e.events.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	e.khr.Shutdown()
	if err := e.windowSystem.Shutdown(); err != nil {
		core.LogError("window system shutdown failed: %s", err)
	}

	fps, frameMS := e.metrics.Frame()
	core.LogInfo("engine %s stopped (last fps %.0f, avg frame %.2fms)", e.id, fps, frameMS)

	e.created = false
	e.isRunning.Store(false)
}

// Register a draw callback function to be used to render each frame.
func (e *Engine) RegisterDrawFunc(drawFunc DrawFunc) {
	e.drawFunc = drawFunc
}

// Register a callback function to be called on shutdown.
func (e *Engine) RegisterShutdownFunc(shutdownFunc ShutdownFunc) {
	e.shutdownFunc = shutdownFunc
}

// Register an update callback function to be used to update on each time step.
func (e *Engine) RegisterUpdateFunc(updateFunc UpdateFunc) {
	e.updateFunc = updateFunc
}

// Register a keyboard input processing callback function.
func (e *Engine) RegisterKeyFunc(keyFunc KeyFunc) {
	e.keyFunc = keyFunc
}

func (e *Engine) CallDrawFunc() {
	if e.drawFunc != nil {
		e.drawFunc(e.context)
	}
}

func (e *Engine) CallShutdownFunc() {
	if e.shutdownFunc != nil {
		e.shutdownFunc(e.context)
	}
}

func (e *Engine) CallUpdateFunc(deltatime float32) {
	if e.updateFunc != nil {
		e.updateFunc(e.context, deltatime)
	}
}

func (e *Engine) CallKeyFunc(key byte, x, y int) {
	if e.keyFunc != nil {
		e.keyFunc(e.context, key, x, y)
	}
}

func (e *Engine) onEvent(code core.EventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	if code == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.Stop()
		return true
	}
	return false
}

func (e *Engine) onKey(code core.EventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", code)
		return false
	}

	if ke.KeyCode == core.KEY_ESCAPE && e.config.QuitOnEscape {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EVENT_CODE_APPLICATION_QUIT, e, core.EventContext{})
		// Block anything else from processing this.
		return true
	}

	c, ok := ke.KeyCode.Char()
	if !ok {
		core.LogDebug("key 0x%X has no character, not dispatched", uint16(ke.KeyCode))
		return false
	}
	e.CallKeyFunc(c, ke.PosX, ke.PosY)
	return false
}

func (e *Engine) onResized(code core.EventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", code)
		return false
	}

	width, height := se.WindowWidth, se.WindowHeight
	if width == e.context.Width && height == e.context.Height {
		return false
	}
	e.context.Width, e.context.Height = width, height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
	} else if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	return false
}
