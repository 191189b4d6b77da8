// Package gesture translates pointer events into world-space motion. A
// Dragger runs the per-node idle→dragging→idle state machine and estimates
// release velocity from a small circular buffer of recent samples; the Pan
// types reuse the same sampling at the camera level and add a decaying
// coast loop for inertial panning.
//
// Everything here is driven by the UI event loop: no goroutines, no locks.
// Timing is injectable so tests can feed precise sample spacing.
package gesture

import (
	"time"

	"github.com/mwestveld/newscanvas/pkg/geom"
)

const (
	// sampleSlots is the circular velocity buffer size. Four samples
	// cover roughly the last 60ms of a typical pointer stream, enough to
	// smooth jitter without dulling a fast flick.
	sampleSlots = 4
	// minVelocityWindow guards the velocity division: a span at or below
	// this reports zero velocity instead of a blow-up.
	minVelocityWindow = 5 * time.Millisecond
)

// PointerCapturer routes a pointer stream exclusively to one gesture, the
// way DOM setPointerCapture does. Implementations are provided by the
// renderer; NopCapturer serves tests and headless use.
type PointerCapturer interface {
	Capture(pointerID int)
	Release(pointerID int)
}

// NopCapturer is a PointerCapturer that does nothing.
type NopCapturer struct{}

func (NopCapturer) Capture(int) {}
func (NopCapturer) Release(int) {}

// sample is one timestamped world-space position.
type sample struct {
	pos geom.Vec3
	at  time.Time
}

// sampleRing is the fixed-size circular buffer shared by drag and pan.
// Overflow overwrites the oldest slot.
type sampleRing struct {
	slots [sampleSlots]sample
	count int
	next  int
}

func (r *sampleRing) reset() {
	r.count = 0
	r.next = 0
}

func (r *sampleRing) push(p geom.Vec3, at time.Time) {
	r.slots[r.next] = sample{pos: p, at: at}
	r.next = (r.next + 1) % sampleSlots
	if r.count < sampleSlots {
		r.count++
	}
}

// velocity estimates px/s from the oldest and newest samples. Fewer than
// two samples, or a span within the guard window, yields zero. The z
// component is always zero: flings are planar.
func (r *sampleRing) velocity() geom.Vec3 {
	if r.count < 2 {
		return geom.Vec3{}
	}
	newest := r.slots[(r.next-1+sampleSlots)%sampleSlots]
	oldest := r.slots[(r.next-r.count+sampleSlots)%sampleSlots]
	elapsed := newest.at.Sub(oldest.at)
	if elapsed <= minVelocityWindow {
		return geom.Vec3{}
	}
	v := geom.Scale(1/elapsed.Seconds(), geom.Sub(newest.pos, oldest.pos))
	return v.WithZ(0)
}

// DragConfig wires a Dragger to its surroundings.
type DragConfig struct {
	// Zoom returns the current camera zoom; screen deltas divide by it to
	// become world deltas. Nil means zoom 1.
	Zoom func() float64
	// Capture owns pointer routing. Nil means NopCapturer.
	Capture PointerCapturer
	// OnMove is invoked with the new world position on every move.
	OnMove func(pos geom.Vec3)
	// OnEnd is invoked once on release with the final world position and
	// the estimated release velocity (px/s, planar).
	OnEnd func(pos, velocity geom.Vec3)
	// Now supplies timestamps; nil means time.Now.
	Now func() time.Time
}

// Dragger is the per-node drag state machine: idle → dragging → idle.
type Dragger struct {
	cfg DragConfig

	dragging   bool
	pointerID  int
	startX     float64 // screen-space pointer origin
	startY     float64
	startWorld geom.Vec3
	currentPos geom.Vec3
	ring       sampleRing
}

// NewDragger creates a drag state machine.
func NewDragger(cfg DragConfig) *Dragger {
	if cfg.Zoom == nil {
		cfg.Zoom = func() float64 { return 1 }
	}
	if cfg.Capture == nil {
		cfg.Capture = NopCapturer{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Dragger{cfg: cfg}
}

// Dragging reports whether a drag is in flight.
func (d *Dragger) Dragging() bool {
	return d.dragging
}

// Position returns the latest world position of the dragged element.
func (d *Dragger) Position() geom.Vec3 {
	return d.currentPos
}

// PointerDown starts a drag: records the screen origin and the element's
// world origin, resets the velocity buffer and captures the pointer.
func (d *Dragger) PointerDown(pointerID int, screenX, screenY float64, world geom.Vec3) {
	d.dragging = true
	d.pointerID = pointerID
	d.startX = screenX
	d.startY = screenY
	d.startWorld = world
	d.currentPos = world
	d.ring.reset()
	d.cfg.Capture.Capture(pointerID)
}

// PointerMove advances the drag. Events from other pointers, or outside a
// drag, are ignored. The screen delta divides by zoom to become a world
// delta; z stays untouched because 2D dragging never moves layers.
func (d *Dragger) PointerMove(pointerID int, screenX, screenY float64) {
	if !d.dragging || pointerID != d.pointerID {
		return
	}
	pos := d.worldAt(screenX, screenY)
	d.currentPos = pos
	d.ring.push(pos, d.cfg.Now())
	if d.cfg.OnMove != nil {
		d.cfg.OnMove(pos)
	}
}

// PointerUp finishes the drag: final position computed the same way as a
// move, velocity estimated from the sample buffer, pointer released.
func (d *Dragger) PointerUp(pointerID int, screenX, screenY float64) {
	if !d.dragging || pointerID != d.pointerID {
		return
	}
	pos := d.worldAt(screenX, screenY)
	vel := d.ring.velocity()
	d.dragging = false
	d.cfg.Capture.Release(pointerID)
	if d.cfg.OnEnd != nil {
		d.cfg.OnEnd(pos, vel)
	}
}

// Cancel aborts the drag without firing OnEnd, used when the gesture is
// taken over (e.g. a modal opens mid-drag).
func (d *Dragger) Cancel() {
	if !d.dragging {
		return
	}
	d.dragging = false
	d.cfg.Capture.Release(d.pointerID)
}

func (d *Dragger) worldAt(screenX, screenY float64) geom.Vec3 {
	zoom := d.cfg.Zoom()
	if zoom <= 0 {
		zoom = 1
	}
	dx := (screenX - d.startX) / zoom
	dy := (screenY - d.startY) / zoom
	return geom.V(d.startWorld.X+dx, d.startWorld.Y+dy, d.startWorld.Z)
}
