package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func TestClockElapsed(t *testing.T) {
	ft := &fakeTime{t: time.Unix(100, 0)}
	c := &Clock{now: ft.now}

	c.Update()
	assert.Zero(t, c.Elapsed(), "stopped clock should not advance")

	c.Start()
	assert.True(t, c.IsRunning())

	ft.t = ft.t.Add(16 * time.Millisecond)
	c.Update()
	assert.Equal(t, 16*time.Millisecond, c.Elapsed())

	ft.t = ft.t.Add(time.Second)
	c.Update()
	assert.Equal(t, time.Second+16*time.Millisecond, c.Elapsed())
}

func TestClockStopKeepsElapsed(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := &Clock{now: ft.now}
	c.Start()
	ft.t = ft.t.Add(time.Second)
	c.Update()
	c.Stop()

	ft.t = ft.t.Add(time.Second)
	c.Update()
	assert.False(t, c.IsRunning())
	assert.Equal(t, time.Second, c.Elapsed())
}

func TestClockStartResets(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := &Clock{now: ft.now}
	c.Start()
	ft.t = ft.t.Add(time.Second)
	c.Update()
	c.Start()
	assert.Zero(t, c.Elapsed())
}
