package platform

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/glengine/engine/containers"
	"github.com/spaghettifunk/glengine/engine/core"
)

// Number of window events buffered between two PumpMessages calls.
const eventQueueSize = 256

type rawEventKind uint8

const (
	rawKey rawEventKind = iota
	rawButton
	rawCursor
	rawScroll
	rawResize
)

type rawEvent struct {
	kind    rawEventKind
	key     core.KeyCode
	button  core.Button
	pressed bool
	x, y    int
	scroll  int8
}

type Platform struct {
	Window *glfw.Window

	api    API
	input  *core.InputSystem
	events *containers.RingQueue[rawEvent]
}

func New() *Platform {
	return &Platform{
		Window: nil,
		events: containers.NewRingQueue[rawEvent](eventQueueSize),
	}
}

func (p *Platform) Startup(cfg *WindowConfig, input *core.InputSystem) error {
	// Events left over from a previous session belong to its input system.
	p.reset()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	switch cfg.API {
	case APIVulkan:
		if !glfw.VulkanSupported() {
			glfw.Terminate()
			return fmt.Errorf("vulkan loader not found: %w", core.ErrExtensionMissing)
		}
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Required for Vulkan.
	default:
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
		glfw.WindowHint(glfw.ContextCreationAPI, glfw.EGLContextAPI)
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 0)
	}
	applyFramebufferHints(cfg.Flags)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create window: %w", err)
	}
	p.Window = window
	p.api = cfg.API
	p.input = input

	if p.api == APIGLES {
		p.Window.MakeContextCurrent()
		glfw.SwapInterval(cfg.SwapInterval)
	}

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetScrollCallback(p.scrollCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetPos(cfg.PosX, cfg.PosY)
	p.Window.Show()

	core.LogDebug("window `%s` created (%dx%d at %d,%d, %s)", cfg.Title, cfg.Width, cfg.Height, cfg.PosX, cfg.PosY, cfg.API)
	return nil
}

func applyFramebufferHints(flags WindowFlag) {
	glfw.WindowHint(glfw.RedBits, 8)
	glfw.WindowHint(glfw.GreenBits, 8)
	glfw.WindowHint(glfw.BlueBits, 8)
	glfw.WindowHint(glfw.AlphaBits, bitsIf(flags.Has(WindowAlpha), 8))
	glfw.WindowHint(glfw.DepthBits, bitsIf(flags.Has(WindowDepth), 24))
	glfw.WindowHint(glfw.StencilBits, bitsIf(flags.Has(WindowStencil), 8))
	glfw.WindowHint(glfw.Samples, bitsIf(flags.Has(WindowMultisample), 4))
}

func bitsIf(cond bool, bits int) int {
	if cond {
		return bits
	}
	return 0
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	p.reset()
	p.input = nil
	return nil
}

func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	p.drain()
	return !p.Window.ShouldClose()
}

// drain hands every buffered event to the input system, oldest first.
func (p *Platform) drain() {
	for !p.events.IsEmpty() {
		ev, err := p.events.Dequeue()
		if err != nil {
			break
		}
		p.dispatch(ev)
	}
}

func (p *Platform) reset() {
	for !p.events.IsEmpty() {
		if _, err := p.events.Dequeue(); err != nil {
			break
		}
	}
}

func (p *Platform) dispatch(ev rawEvent) {
	switch ev.kind {
	case rawKey:
		p.input.ProcessKey(ev.key, ev.pressed)
	case rawButton:
		p.input.ProcessButton(ev.button, ev.pressed)
	case rawCursor:
		p.input.ProcessMouseMove(ev.x, ev.y)
	case rawScroll:
		p.input.ProcessMouseWheel(ev.scroll)
	case rawResize:
		p.input.ProcessResize(ev.x, ev.y)
	}
}

func (p *Platform) SwapBuffers() {
	// Vulkan presents through its own swapchain.
	if p.api == APIGLES {
		p.Window.SwapBuffers()
	}
}

func (p *Platform) FramebufferSize() (int, int) {
	return p.Window.GetFramebufferSize()
}

func (p *Platform) RequiredExtensionNames() []string {
	if p.api != APIVulkan || p.Window == nil {
		return nil
	}
	return p.Window.GetRequiredInstanceExtensions()
}

func (p *Platform) push(ev rawEvent) {
	if err := p.events.Enqueue(ev); err != nil {
		core.LogWarn("dropping window event: %s", err)
	}
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	code, ok := TranslateKey(key)
	if !ok {
		return
	}
	p.push(rawEvent{kind: rawKey, key: code, pressed: action == glfw.Press})
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	var b core.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = core.BUTTON_LEFT
	case glfw.MouseButtonRight:
		b = core.BUTTON_RIGHT
	case glfw.MouseButtonMiddle:
		b = core.BUTTON_MIDDLE
	default:
		return
	}
	p.push(rawEvent{kind: rawButton, button: b, pressed: action == glfw.Press})
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	p.push(rawEvent{kind: rawCursor, x: int(xpos), y: int(ypos)})
}

func (p *Platform) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	var z int8
	switch {
	case yoff > 0:
		z = 1
	case yoff < 0:
		z = -1
	default:
		return
	}
	p.push(rawEvent{kind: rawScroll, scroll: z})
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.push(rawEvent{kind: rawResize, x: width, y: height})
}
