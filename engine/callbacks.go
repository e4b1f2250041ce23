package engine

// Context is handed to every callback. UserData belongs to the application,
// the engine never touches it.
type Context struct {
	// Framebuffer size of the window.
	Width  int
	Height int

	UserData interface{}
}

// DrawFunc renders the scene for the current frame.
type DrawFunc func(ctx *Context)

// ShutdownFunc is called once, when the loop exits.
type ShutdownFunc func(ctx *Context)

// UpdateFunc advances the application by deltaTime seconds.
type UpdateFunc func(ctx *Context, deltaTime float32)

// KeyFunc receives key presses together with the cursor position.
type KeyFunc func(ctx *Context, key byte, x, y int)
