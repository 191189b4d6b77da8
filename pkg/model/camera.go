package model

import "github.com/mwestveld/newscanvas/pkg/geom"

// RenderMode selects the presentation surface the renderer targets.
type RenderMode string

const (
	Render2D RenderMode = "2d"
	Render3D RenderMode = "3d"
)

// Camera is the canvas viewport: world-space position of the view center
// and a zoom factor (screen pixels per world pixel). Zoom participates in
// drag math, so it must never be zero.
type Camera struct {
	Position geom.Vec3 `json:"position"`
	Zoom     float64   `json:"zoom"`
}

// DefaultCamera returns the origin viewport at 1:1 zoom.
func DefaultCamera() Camera {
	return Camera{Zoom: 1}
}

// SafeZoom returns the camera zoom clamped away from zero so screen→world
// conversion never divides by zero.
func (c Camera) SafeZoom() float64 {
	if c.Zoom <= 0.01 {
		return 0.01
	}
	return c.Zoom
}

// DeviceCapabilities describes the host device, set once at mount. The
// layout engine uses LowPower to skip the 3D depth perturbation.
type DeviceCapabilities struct {
	Touch    bool `json:"touch,omitempty"`
	LowPower bool `json:"low_power,omitempty"`
}
