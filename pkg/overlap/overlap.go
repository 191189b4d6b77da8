// Package overlap detects node collisions and provides the deterministic
// auto-spread fallback used once at mount when imported positions collide.
package overlap

import (
	"github.com/mwestveld/newscanvas/pkg/config"
	"github.com/mwestveld/newscanvas/pkg/geom"
	"github.com/mwestveld/newscanvas/pkg/model"
)

// SpreadColumns is the fixed grid width of the auto-spread fallback.
const SpreadColumns = 3

// nodeBounds returns the axis-aligned box around a node's center position
// using its kind's fixed footprint.
func nodeBounds(n model.CanvasNode) model.Bounds {
	fp := n.Footprint()
	return model.Bounds{
		X: n.Position.X - fp.W/2,
		Y: n.Position.Y - fp.H/2,
		W: fp.W,
		H: fp.H,
	}
}

// HasOverlap reports whether any two nodes' bounding boxes intersect.
// Pairwise O(n²); realistic canvases are hundreds of nodes, well within the
// mount-time budget this runs under.
func HasOverlap(nodes []model.CanvasNode) bool {
	for i := 0; i < len(nodes); i++ {
		bi := nodeBounds(nodes[i])
		for j := i + 1; j < len(nodes); j++ {
			if bi.Intersects(nodeBounds(nodes[j])) {
				return true
			}
		}
	}
	return false
}

// AutoSpread arranges all nodes into a fixed-column grid centered on
// origin and returns the new position per node id. Column widths and row
// heights are per-column/per-row footprint maxima, the same technique
// bucket packing uses, so no cell member can collide. Z components are
// preserved.
func AutoSpread(nodes []model.CanvasNode, origin geom.Vec3) map[string]geom.Vec3 {
	out := make(map[string]geom.Vec3, len(nodes))
	if len(nodes) == 0 {
		return out
	}
	gap := config.DefaultTuning().Pack.CellGap

	cols := SpreadColumns
	if len(nodes) < cols {
		cols = len(nodes)
	}
	rows := (len(nodes) + cols - 1) / cols

	colW := make([]float64, cols)
	rowH := make([]float64, rows)
	for i, n := range nodes {
		fp := n.Footprint()
		c, r := i%cols, i/cols
		if fp.W > colW[c] {
			colW[c] = fp.W
		}
		if fp.H > rowH[r] {
			rowH[r] = fp.H
		}
	}

	totalW := gap * float64(cols-1)
	for _, w := range colW {
		totalW += w
	}
	totalH := gap * float64(rows-1)
	for _, h := range rowH {
		totalH += h
	}

	colX := make([]float64, cols)
	x := -totalW / 2
	for c := 0; c < cols; c++ {
		colX[c] = x + colW[c]/2
		x += colW[c] + gap
	}
	rowY := make([]float64, rows)
	y := -totalH / 2
	for r := 0; r < rows; r++ {
		rowY[r] = y + rowH[r]/2
		y += rowH[r] + gap
	}

	for i, n := range nodes {
		c, r := i%cols, i/cols
		out[n.ID] = geom.V(origin.X+colX[c], origin.Y+rowY[r], n.Position.Z)
	}
	return out
}
