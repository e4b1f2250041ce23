package testbed

import (
	"io"
	"testing"
	"unsafe"

	"github.com/spaghettifunk/glengine/engine"
	"github.com/spaghettifunk/glengine/engine/core"
	"github.com/spaghettifunk/glengine/engine/khr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	core.SetLogOutput(io.Discard)
}

func newGame(t *testing.T) (*TestGame, *engine.Engine, *gameState) {
	t.Helper()
	e, err := engine.New(nil, khr.NewVulkan())
	require.NoError(t, err)
	g := NewTestGame(e)
	s, ok := e.Context().UserData.(*gameState)
	require.True(t, ok)
	return g, e, s
}

func TestUpdateRotates(t *testing.T) {
	_, e, s := newGame(t)

	e.CallUpdateFunc(0.5)
	assert.InDelta(t, 20.0, s.Angle, 1e-5)
	assert.InDelta(t, 0.5, s.Elapsed, 1e-5)

	e.CallUpdateFunc(9)
	assert.InDelta(t, 20.0, s.Angle, 1e-3, "full turns wrap around")
}

func TestKeyTogglesPause(t *testing.T) {
	_, e, s := newGame(t)

	e.CallKeyFunc('P', 1, 2)
	assert.True(t, s.Paused)
	assert.Equal(t, byte('P'), s.LastKey)

	e.CallUpdateFunc(1)
	assert.Zero(t, s.Angle)
	assert.InDelta(t, 1.0, s.Elapsed, 1e-5)

	e.CallKeyFunc(' ', 0, 0)
	assert.False(t, s.Paused)

	e.CallKeyFunc('x', 0, 0)
	assert.False(t, s.Paused)
	assert.Equal(t, byte('x'), s.LastKey)
}

func TestDrawCountsFrames(t *testing.T) {
	_, e, s := newGame(t)
	for i := 0; i < 3; i++ {
		e.CallDrawFunc()
	}
	assert.Equal(t, uint64(3), s.Frames)
	assert.NotPanics(t, e.CallShutdownFunc)
}

func TestCallbacksTolerateForeignUserData(t *testing.T) {
	_, e, _ := newGame(t)
	e.SetUserData(42)
	assert.NotPanics(t, func() {
		e.CallUpdateFunc(1)
		e.CallDrawFunc()
		e.CallKeyFunc('a', 0, 0)
	})
}

func TestInitializeWithVulkanLoader(t *testing.T) {
	g, _, _ := newGame(t)
	assert.NotPanics(t, g.Initialize)
}

func TestMissingEntryPoints(t *testing.T) {
	var sentinel byte
	lookup := func(name string) unsafe.Pointer {
		if name == "glViewport" {
			return nil
		}
		return unsafe.Pointer(&sentinel)
	}
	assert.Equal(t, []string{"glViewport"}, missingEntryPoints(lookup))

	all := func(string) unsafe.Pointer { return unsafe.Pointer(&sentinel) }
	assert.Empty(t, missingEntryPoints(all))
}
