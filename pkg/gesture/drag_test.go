package gesture_test

import (
	"math"
	"testing"
	"time"

	"github.com/mwestveld/newscanvas/pkg/geom"
	"github.com/mwestveld/newscanvas/pkg/gesture"
)

// fakeClock hands out a controllable time.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// recordingCapturer tracks capture/release pairing.
type recordingCapturer struct {
	captured []int
	released []int
}

func (r *recordingCapturer) Capture(id int) { r.captured = append(r.captured, id) }
func (r *recordingCapturer) Release(id int) { r.released = append(r.released, id) }

// Pointer moves from (0,0) to (100,0) over 100ms at zoom 1: release
// velocity ≈ (1000, 0, 0) px/s.
func TestDragVelocityScenario(t *testing.T) {
	clock := newFakeClock()
	var endPos, endVel geom.Vec3
	d := gesture.NewDragger(gesture.DragConfig{
		Now: clock.Now,
		OnEnd: func(p, v geom.Vec3) {
			endPos, endVel = p, v
		},
	})

	d.PointerDown(1, 0, 0, geom.V(0, 0, 0))
	for i := 1; i <= 4; i++ {
		clock.Advance(25 * time.Millisecond)
		d.PointerMove(1, float64(i)*25, 0)
	}
	d.PointerUp(1, 100, 0)

	if endPos != geom.V(100, 0, 0) {
		t.Errorf("final position = %+v, want (100,0,0)", endPos)
	}
	// Buffer holds the last 4 samples (25..100ms): exactly 1000 px/s.
	if math.Abs(endVel.X-1000) > 50 {
		t.Errorf("velocity.X = %f, want ≈1000", endVel.X)
	}
	if endVel.Y != 0 || endVel.Z != 0 {
		t.Errorf("velocity = %+v, want planar X only", endVel)
	}
}

func TestDragZoomAwareDeltas(t *testing.T) {
	var moved geom.Vec3
	d := gesture.NewDragger(gesture.DragConfig{
		Zoom:   func() float64 { return 2 },
		OnMove: func(p geom.Vec3) { moved = p },
	})

	d.PointerDown(1, 100, 100, geom.V(10, 10, 3))
	d.PointerMove(1, 180, 140)

	// 80 screen px / zoom 2 = 40 world px; z untouched.
	if moved != geom.V(50, 30, 3) {
		t.Errorf("moved = %+v, want (50,30,3)", moved)
	}
}

func TestDragPreservesZ(t *testing.T) {
	var endPos geom.Vec3
	d := gesture.NewDragger(gesture.DragConfig{
		OnEnd: func(p, _ geom.Vec3) { endPos = p },
	})
	d.PointerDown(1, 0, 0, geom.V(0, 0, 7))
	d.PointerMove(1, 10, 10)
	d.PointerUp(1, 10, 10)

	if endPos.Z != 7 {
		t.Errorf("z = %f, want preserved 7", endPos.Z)
	}
}

func TestDragVelocityGuards(t *testing.T) {
	clock := newFakeClock()
	var endVel geom.Vec3
	ended := 0
	d := gesture.NewDragger(gesture.DragConfig{
		Now: clock.Now,
		OnEnd: func(_, v geom.Vec3) {
			endVel = v
			ended++
		},
	})

	// One sample only: zero velocity.
	d.PointerDown(1, 0, 0, geom.V(0, 0, 0))
	clock.Advance(20 * time.Millisecond)
	d.PointerMove(1, 50, 0)
	d.PointerUp(1, 50, 0)
	if endVel != (geom.Vec3{}) {
		t.Errorf("single-sample velocity = %+v, want zero", endVel)
	}

	// Two samples within the 5ms guard window: zero velocity.
	d.PointerDown(1, 0, 0, geom.V(0, 0, 0))
	d.PointerMove(1, 10, 0)
	clock.Advance(2 * time.Millisecond)
	d.PointerMove(1, 90, 0)
	d.PointerUp(1, 90, 0)
	if endVel != (geom.Vec3{}) {
		t.Errorf("sub-window velocity = %+v, want zero", endVel)
	}
	if ended != 2 {
		t.Errorf("OnEnd fired %d times, want 2", ended)
	}
}

func TestDragBufferOverwritesOldest(t *testing.T) {
	clock := newFakeClock()
	var endVel geom.Vec3
	d := gesture.NewDragger(gesture.DragConfig{
		Now:   clock.Now,
		OnEnd: func(_, v geom.Vec3) { endVel = v },
	})

	d.PointerDown(1, 0, 0, geom.V(0, 0, 0))
	// A slow approach followed by a fast flick: only the last 4 samples
	// (the flick) should shape the velocity.
	for i := 1; i <= 10; i++ {
		clock.Advance(200 * time.Millisecond)
		d.PointerMove(1, float64(i), 0)
	}
	for i := 1; i <= 4; i++ {
		clock.Advance(10 * time.Millisecond)
		d.PointerMove(1, 10+float64(i)*30, 0)
	}
	d.PointerUp(1, 130, 0)

	// Flick: 90px over 30ms = 3000 px/s; the slow approach would have
	// dragged this toward zero.
	if endVel.X < 2000 {
		t.Errorf("velocity.X = %f, want flick-dominated (≥2000)", endVel.X)
	}
}

func TestDragIgnoresForeignPointers(t *testing.T) {
	moves := 0
	d := gesture.NewDragger(gesture.DragConfig{
		OnMove: func(geom.Vec3) { moves++ },
	})

	d.PointerDown(1, 0, 0, geom.V(0, 0, 0))
	d.PointerMove(2, 50, 50) // different pointer
	d.PointerUp(2, 50, 50)

	if moves != 0 {
		t.Errorf("foreign pointer produced %d moves", moves)
	}
	if !d.Dragging() {
		t.Error("foreign pointer-up ended the drag")
	}
	d.PointerUp(1, 0, 0)
	if d.Dragging() {
		t.Error("drag did not end")
	}
}

func TestDragCapturePairing(t *testing.T) {
	cap := &recordingCapturer{}
	d := gesture.NewDragger(gesture.DragConfig{Capture: cap})

	d.PointerDown(7, 0, 0, geom.V(0, 0, 0))
	d.PointerUp(7, 10, 10)

	if len(cap.captured) != 1 || cap.captured[0] != 7 {
		t.Errorf("captured = %v", cap.captured)
	}
	if len(cap.released) != 1 || cap.released[0] != 7 {
		t.Errorf("released = %v", cap.released)
	}
}

func TestDragCancelSkipsOnEnd(t *testing.T) {
	cap := &recordingCapturer{}
	ended := false
	d := gesture.NewDragger(gesture.DragConfig{
		Capture: cap,
		OnEnd:   func(_, _ geom.Vec3) { ended = true },
	})

	d.PointerDown(1, 0, 0, geom.V(0, 0, 0))
	d.Cancel()

	if ended {
		t.Error("Cancel fired OnEnd")
	}
	if len(cap.released) != 1 {
		t.Error("Cancel did not release the pointer")
	}
	if d.Dragging() {
		t.Error("still dragging after Cancel")
	}
}
