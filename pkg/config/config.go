// Package config handles layout tuning configuration.
//
// Tuning follows the XDG Base Directory specification:
//   - Config: ~/.config/newscanvas/tuning.yaml
//
// Every knob has a default; a missing file or missing key falls back
// silently so the canvas always has a usable layout configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Drill-depth bounds per grouping mode. These are deliberate constants, not
// derived from data: dates have three granularities (year/month/day),
// location paths carry up to six segments.
const (
	MaxDateDepth     = 2
	MaxLocationDepth = 5
	DefaultDepth     = 1
)

// RingTuning controls the radial layouts (center-out and propagate).
type RingTuning struct {
	BaseSpacing float64 `yaml:"base_spacing,omitempty"` // radius step per ring
	Margin      float64 `yaml:"margin,omitempty"`       // extra arc room per node
	DepthStep   float64 `yaml:"depth_step,omitempty"`   // 3D z push-back per ring
	DepthWobble float64 `yaml:"depth_wobble,omitempty"` // 3D sine perturbation amplitude
}

// PackTuning controls bucket packing and group tiling.
type PackTuning struct {
	ColumnCap    int     `yaml:"column_cap,omitempty"`     // max items per bucket row
	GroupsPerRow int     `yaml:"groups_per_row,omitempty"` // max groups per tiling row
	CellGap      float64 `yaml:"cell_gap,omitempty"`       // spacing between cells
	Padding      float64 `yaml:"padding,omitempty"`        // inner frame padding
	LabelRow     float64 `yaml:"label_row,omitempty"`      // frame allowance for the label
	GroupGap     float64 `yaml:"group_gap,omitempty"`      // spacing between group frames
}

// GestureTuning controls pan inertia.
type GestureTuning struct {
	PanDecay    float64 `yaml:"pan_decay,omitempty"`     // velocity multiplier per frame
	PanMinSpeed float64 `yaml:"pan_min_speed,omitempty"` // px/s below which coasting stops
}

// Tuning is the full layout tuning configuration.
type Tuning struct {
	Ring    RingTuning    `yaml:"ring,omitempty"`
	Pack    PackTuning    `yaml:"pack,omitempty"`
	Gesture GestureTuning `yaml:"gesture,omitempty"`
	// Palette supplies group frame colors, cycled in bucket order.
	Palette []string `yaml:"palette,omitempty"`
}

// DefaultTuning returns the built-in tuning values.
func DefaultTuning() Tuning {
	return Tuning{
		Ring: RingTuning{
			BaseSpacing: 320,
			Margin:      40,
			DepthStep:   180,
			DepthWobble: 60,
		},
		Pack: PackTuning{
			ColumnCap:    4,
			GroupsPerRow: 3,
			CellGap:      30,
			Padding:      40,
			LabelRow:     56,
			GroupGap:     80,
		},
		Gesture: GestureTuning{
			PanDecay:    0.92,
			PanMinSpeed: 8,
		},
		Palette: []string{
			"#4c6ef5", "#12b886", "#fa5252", "#fab005",
			"#7950f2", "#15aabf", "#e64980", "#82c91e",
		},
	}
}

// normalize fills zero-valued knobs from defaults so a sparse yaml file
// cannot produce a degenerate layout.
func (t Tuning) normalize() Tuning {
	d := DefaultTuning()
	if t.Ring.BaseSpacing <= 0 {
		t.Ring.BaseSpacing = d.Ring.BaseSpacing
	}
	if t.Ring.Margin <= 0 {
		t.Ring.Margin = d.Ring.Margin
	}
	if t.Ring.DepthStep <= 0 {
		t.Ring.DepthStep = d.Ring.DepthStep
	}
	if t.Ring.DepthWobble < 0 {
		t.Ring.DepthWobble = d.Ring.DepthWobble
	}
	if t.Pack.ColumnCap <= 0 {
		t.Pack.ColumnCap = d.Pack.ColumnCap
	}
	if t.Pack.GroupsPerRow <= 0 {
		t.Pack.GroupsPerRow = d.Pack.GroupsPerRow
	}
	if t.Pack.CellGap <= 0 {
		t.Pack.CellGap = d.Pack.CellGap
	}
	if t.Pack.Padding <= 0 {
		t.Pack.Padding = d.Pack.Padding
	}
	if t.Pack.LabelRow <= 0 {
		t.Pack.LabelRow = d.Pack.LabelRow
	}
	if t.Pack.GroupGap <= 0 {
		t.Pack.GroupGap = d.Pack.GroupGap
	}
	if t.Gesture.PanDecay <= 0 || t.Gesture.PanDecay >= 1 {
		t.Gesture.PanDecay = d.Gesture.PanDecay
	}
	if t.Gesture.PanMinSpeed <= 0 {
		t.Gesture.PanMinSpeed = d.Gesture.PanMinSpeed
	}
	if len(t.Palette) == 0 {
		t.Palette = d.Palette
	}
	return t
}

// ConfigDir returns the newscanvas config directory.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "newscanvas"), nil
}

// TuningPath returns the path of the tuning file.
func TuningPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tuning.yaml"), nil
}

// LoadTuning reads tuning from path. A missing file yields the defaults;
// a malformed file is an error (silently ignoring typos would make tuning
// edits unobservable).
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultTuning(), nil
	}
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	return t.normalize(), nil
}

// SaveTuning writes tuning to path, creating parent directories.
func SaveTuning(path string, t Tuning) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal tuning: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tuning: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace tuning: %w", err)
	}
	return nil
}
