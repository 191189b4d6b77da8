// Package layout computes canvas positions for graph nodes. All functions
// are pure and deterministic: the same nodes, edges and options always
// produce the same positions and groups, with ties broken by input order.
//
// Two families of layouts exist. The radial layouts (center-out, propagate)
// place BFS rings around a root node. The grouping layouts (date, location,
// entity) partition nodes into buckets and pack each bucket into a wrapping
// grid, emitting an ephemeral LayoutGroup per bucket so the renderer can
// draw frames.
package layout

import (
	"time"

	"github.com/mwestveld/newscanvas/pkg/config"
	"github.com/mwestveld/newscanvas/pkg/debug"
	"github.com/mwestveld/newscanvas/pkg/geom"
	"github.com/mwestveld/newscanvas/pkg/model"
)

// Mode identifies a layout algorithm.
type Mode string

const (
	ModeCenterOut     Mode = "center-out"
	ModePropagate     Mode = "propagate"
	ModeGroupDate     Mode = "group-date"
	ModeGroupLocation Mode = "group-location"
	ModeGroupEntity   Mode = "group-entity"
)

// IsGrouping reports whether the mode emits layout groups.
func (m Mode) IsGrouping() bool {
	switch m {
	case ModeGroupDate, ModeGroupLocation, ModeGroupEntity:
		return true
	}
	return false
}

// Drillable reports whether drill depth applies to the mode.
func (m Mode) Drillable() bool {
	return m == ModeGroupDate || m == ModeGroupLocation
}

// MaxDepth returns the drill depth bound for the mode (0 for modes without
// drill semantics).
func (m Mode) MaxDepth() int {
	switch m {
	case ModeGroupDate:
		return config.MaxDateDepth
	case ModeGroupLocation:
		return config.MaxLocationDepth
	}
	return 0
}

// ClampDepth bounds a drill depth for the mode.
func (m Mode) ClampDepth(depth int) int {
	if depth < 0 {
		return 0
	}
	if max := m.MaxDepth(); depth > max {
		return max
	}
	return depth
}

// Ranking selects how the radial root is chosen when none is supplied.
type Ranking int

const (
	// RankDegree ranks nodes by edge degree, ties by input order.
	RankDegree Ranking = iota
	// RankPageRank ranks nodes by PageRank over the symmetrized edge set.
	RankPageRank
)

// Options tunes a single Compute call.
type Options struct {
	// RootID seeds the propagate layout. Unknown or empty falls back to
	// the top-ranked node.
	RootID string
	// Depth is the drill depth for date/location grouping, clamped per
	// mode.
	Depth int
	// Mode3D enables the z push-back and sine perturbation on radial
	// rings. In 2D, z carries the ring index for stacking order.
	Mode3D bool
	// LowPower drops the sine perturbation in 3D, leaving flat rings the
	// renderer can draw without per-node depth sorting.
	LowPower bool
	// Ranking picks the radial root selection strategy.
	Ranking Ranking
	// Tuning overrides the layout tuning; the zero value uses defaults.
	Tuning config.Tuning
}

func (o Options) tuning() config.Tuning {
	if o.Tuning.Ring.BaseSpacing == 0 {
		return config.DefaultTuning()
	}
	return o.Tuning
}

// Result is the output of Compute: a position per input node and, for
// grouping modes, one LayoutGroup per bucket. Positions always covers the
// complete input node id set.
type Result struct {
	Positions map[string]geom.Vec3
	Groups    []model.LayoutGroup
}

// Compute runs the layout algorithm for mode over the node/edge snapshot.
// An empty node set yields an empty result; unknown modes fall back to
// center-out. Compute never fails.
func Compute(mode Mode, nodes []model.CanvasNode, edges []model.CanvasEdge, opts Options) Result {
	start := time.Now()
	res := compute(mode, nodes, edges, opts)
	debug.LogLayout(string(mode), len(nodes), len(edges), len(res.Groups), time.Since(start))
	return res
}

func compute(mode Mode, nodes []model.CanvasNode, edges []model.CanvasEdge, opts Options) Result {
	if len(nodes) == 0 {
		return Result{Positions: map[string]geom.Vec3{}}
	}
	switch mode {
	case ModePropagate:
		return radial(nodes, edges, opts.RootID, opts)
	case ModeGroupDate:
		return packBuckets(dateBuckets(nodes, opts.Depth), nodes, opts.tuning())
	case ModeGroupLocation:
		return packBuckets(locationBuckets(nodes, opts.Depth), nodes, opts.tuning())
	case ModeGroupEntity:
		return packBuckets(entityBuckets(nodes, edges), nodes, opts.tuning())
	default:
		return radial(nodes, edges, "", opts)
	}
}
