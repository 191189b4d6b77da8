package gesture

import (
	"time"

	"github.com/mwestveld/newscanvas/pkg/config"
	"github.com/mwestveld/newscanvas/pkg/geom"
)

// FrameScheduler delivers animation-frame callbacks. Each Request schedules
// exactly one callback; Cancel drops a pending one. The renderer backs this
// with requestAnimationFrame (or a ticker); tests drive frames by hand.
type FrameScheduler interface {
	Request(fn func(now time.Time))
	Cancel()
}

// PanConfig wires a Pan controller to its surroundings.
type PanConfig struct {
	// Zoom returns the camera zoom for screen→world conversion.
	Zoom func() float64
	// Apply shifts the camera by a world-space delta.
	Apply func(delta geom.Vec3)
	// Frames schedules the coast loop. Required for inertia; nil disables
	// coasting (pan still works, it just stops dead).
	Frames FrameScheduler
	// Decay is the per-frame velocity multiplier; zero means the default.
	Decay float64
	// MinSpeed stops the coast when speed (px/s) falls below it; zero
	// means the default.
	MinSpeed float64
	// Now supplies timestamps; nil means time.Now.
	Now func() time.Time
}

// NewPanConfig seeds a PanConfig from the tuning knobs; callers fill in the
// camera and scheduler hooks afterwards.
func NewPanConfig(t config.GestureTuning) PanConfig {
	return PanConfig{
		Decay:    t.PanDecay,
		MinSpeed: t.PanMinSpeed,
	}
}

// Pan is the camera pan controller: the same sampling as node dragging,
// followed by a decaying coast loop on release. Starting a new pan cancels
// any coast in flight, so two loops never compete for the camera.
type Pan struct {
	cfg PanConfig

	panning  bool
	lastX    float64
	lastY    float64
	ring     sampleRing
	traveled geom.Vec3

	coasting  bool
	vel       geom.Vec3
	lastFrame time.Time
}

// NewPan creates a pan controller.
func NewPan(cfg PanConfig) *Pan {
	if cfg.Zoom == nil {
		cfg.Zoom = func() float64 { return 1 }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	defaults := config.DefaultTuning().Gesture
	if cfg.Decay <= 0 || cfg.Decay >= 1 {
		cfg.Decay = defaults.PanDecay
	}
	if cfg.MinSpeed <= 0 {
		cfg.MinSpeed = defaults.PanMinSpeed
	}
	return &Pan{cfg: cfg}
}

// Panning reports whether a pan gesture is in flight.
func (p *Pan) Panning() bool {
	return p.panning
}

// Coasting reports whether the inertial coast loop is running.
func (p *Pan) Coasting() bool {
	return p.coasting
}

// Start begins a pan gesture, cancelling any coast in flight.
func (p *Pan) Start(screenX, screenY float64) {
	p.stopCoast()
	p.panning = true
	p.lastX = screenX
	p.lastY = screenY
	p.ring.reset()
	p.traveled = geom.Vec3{}
}

// Move advances the pan by the screen delta since the last event.
func (p *Pan) Move(screenX, screenY float64) {
	if !p.panning {
		return
	}
	zoom := p.zoom()
	delta := geom.V((screenX-p.lastX)/zoom, (screenY-p.lastY)/zoom, 0)
	p.lastX = screenX
	p.lastY = screenY
	p.traveled = geom.Add(p.traveled, delta)
	p.ring.push(p.traveled, p.cfg.Now())
	if p.cfg.Apply != nil {
		p.cfg.Apply(delta)
	}
}

// End finishes the gesture and, if the release velocity clears the minimum
// speed, starts the coast loop.
func (p *Pan) End() {
	if !p.panning {
		return
	}
	p.panning = false
	vel := p.ring.velocity()
	if geom.Length(vel) < p.cfg.MinSpeed || p.cfg.Frames == nil {
		return
	}
	p.coasting = true
	p.vel = vel
	p.lastFrame = p.cfg.Now()
	p.cfg.Frames.Request(p.step)
}

// step is one coast frame: move by v·dt, decay v, stop under the floor.
func (p *Pan) step(now time.Time) {
	if !p.coasting {
		return
	}
	dt := now.Sub(p.lastFrame).Seconds()
	p.lastFrame = now
	if dt > 0 && p.cfg.Apply != nil {
		p.cfg.Apply(geom.Scale(dt, p.vel))
	}
	p.vel = geom.Scale(p.cfg.Decay, p.vel)
	if geom.Length(p.vel) < p.cfg.MinSpeed {
		p.coasting = false
		return
	}
	p.cfg.Frames.Request(p.step)
}

func (p *Pan) stopCoast() {
	if !p.coasting {
		return
	}
	p.coasting = false
	if p.cfg.Frames != nil {
		p.cfg.Frames.Cancel()
	}
}

func (p *Pan) zoom() float64 {
	z := p.cfg.Zoom()
	if z <= 0 {
		return 1
	}
	return z
}
