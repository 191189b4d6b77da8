package layout

import (
	"math"

	"github.com/mwestveld/newscanvas/pkg/config"
	"github.com/mwestveld/newscanvas/pkg/geom"
	"github.com/mwestveld/newscanvas/pkg/model"
)

// radial implements center-out and propagate: BFS rings around a root,
// each ring a circle whose radius guarantees same-ring nodes cannot
// overlap. rootID == "" (or unknown) falls back to the top-ranked node.
func radial(nodes []model.CanvasNode, edges []model.CanvasEdge, rootID string, opts Options) Result {
	tn := opts.tuning()

	if _, ok := findNode(nodes, rootID); !ok {
		rootID = topRanked(nodes, edges, opts.Ranking)
	}

	cg := buildGraph(nodes, edges)
	ringed := cg.rings(rootID)

	positions := make(map[string]geom.Vec3, len(nodes))
	for k, ring := range ringed {
		if k == 0 {
			// Ring 0 is the root at the origin.
			for _, n := range ring {
				positions[n.ID] = geom.V(0, 0, ringZ(0, 0, opts, tn))
			}
			continue
		}
		radius := ringRadius(k, ring, tn)
		step := 2 * math.Pi / float64(len(ring))
		for i, n := range ring {
			angle := float64(i) * step
			positions[n.ID] = geom.V(
				radius*math.Cos(angle),
				radius*math.Sin(angle),
				ringZ(k, angle, opts, tn),
			)
		}
	}
	return Result{Positions: positions}
}

// ringRadius grows the circle until the ring's members fit: the arc length
// per node must cover the largest member diagonal plus margin, so
// radius >= n*(maxDiag+margin)/2π, floored at k*baseSpacing.
func ringRadius(k int, ring []model.CanvasNode, tn config.Tuning) float64 {
	maxDiag := 0.0
	for _, n := range ring {
		fp := n.Footprint()
		if d := math.Hypot(fp.W, fp.H); d > maxDiag {
			maxDiag = d
		}
	}
	byCount := float64(len(ring)) * (maxDiag + tn.Ring.Margin) / (2 * math.Pi)
	return math.Max(float64(k)*tn.Ring.BaseSpacing, byCount)
}

// ringZ computes the depth hint for a ring member. 3D pushes each ring back
// and wobbles it with a sine of the placement angle, unless the device is
// low-power; 2D uses the ring index as a stacking order.
func ringZ(k int, angle float64, opts Options, tn config.Tuning) float64 {
	if opts.Mode3D {
		z := -float64(k) * tn.Ring.DepthStep
		if !opts.LowPower {
			z += tn.Ring.DepthWobble * math.Sin(angle*3)
		}
		return z
	}
	return float64(k)
}

func findNode(nodes []model.CanvasNode, id string) (model.CanvasNode, bool) {
	if id == "" {
		return model.CanvasNode{}, false
	}
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return model.CanvasNode{}, false
}
