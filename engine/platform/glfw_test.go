package platform

import (
	"testing"

	"github.com/spaghettifunk/glengine/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	seen []core.EventContext
}

func (r *recorder) onEvent(code core.EventCode, sender, listener interface{}, ctx core.EventContext) bool {
	r.seen = append(r.seen, ctx)
	return false
}

func newRecordingInput() (*core.InputSystem, *recorder) {
	es := core.NewEventSystem()
	r := &recorder{}
	for _, code := range []core.EventCode{core.EVENT_CODE_KEY_PRESSED, core.EVENT_CODE_RESIZED} {
		es.Register(code, r, r.onEvent)
	}
	return core.NewInputSystem(es), r
}

func TestDrainDispatchesInOrder(t *testing.T) {
	p := New()
	in, r := newRecordingInput()
	p.input = in

	p.push(rawEvent{kind: rawCursor, x: 3, y: 4})
	p.push(rawEvent{kind: rawKey, key: core.KEY_A, pressed: true})
	p.push(rawEvent{kind: rawResize, x: 800, y: 600})
	p.drain()

	assert.Zero(t, p.events.Len())
	require.Len(t, r.seen, 2)
	assert.Equal(t, &core.KeyEvent{KeyCode: core.KEY_A, PosX: 3, PosY: 4}, r.seen[0].Data)
	assert.Equal(t, &core.SystemEvent{WindowWidth: 800, WindowHeight: 600}, r.seen[1].Data)
}

func TestResetDropsStaleEvents(t *testing.T) {
	p := New()
	stale, _ := newRecordingInput()
	p.input = stale
	p.push(rawEvent{kind: rawKey, key: core.KEY_Q, pressed: true})
	p.push(rawEvent{kind: rawResize, x: 10, y: 10})

	p.reset()
	assert.True(t, p.events.IsEmpty())

	// a new session sees nothing from the previous one
	fresh, r := newRecordingInput()
	p.input = fresh
	p.drain()
	assert.Empty(t, r.seen)
	assert.False(t, fresh.IsKeyDown(core.KEY_Q))
}

func TestPushDropsWhenFull(t *testing.T) {
	p := New()
	for i := 0; i < eventQueueSize+5; i++ {
		p.push(rawEvent{kind: rawScroll, scroll: 1})
	}
	assert.Equal(t, eventQueueSize, p.events.Len())
}
