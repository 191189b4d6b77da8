package layout

import (
	"github.com/mwestveld/newscanvas/pkg/config"
	"github.com/mwestveld/newscanvas/pkg/geom"
	"github.com/mwestveld/newscanvas/pkg/model"
)

// packBuckets lays every bucket out as a wrapping grid and tiles the
// resulting group frames into rows. The same packer serves all three
// grouping modes; only the bucketer differs.
//
// Inside a bucket, members flow left to right up to the column cap and wrap
// to new rows. Column widths and row heights are per-column/per-row maxima
// of member footprints, so no member overflows its cell. The group frame
// adds padding and a label-row allowance. Frames then tile into rows of at
// most GroupsPerRow, each tiling row as tall as its tallest frame.
func packBuckets(buckets []bucket, nodes []model.CanvasNode, tn config.Tuning) Result {
	positions := make(map[string]geom.Vec3, len(nodes))
	groups := make([]model.LayoutGroup, 0, len(buckets))

	cursorX, cursorY := 0.0, 0.0
	rowHeight := 0.0
	inRow := 0

	for bi, b := range buckets {
		frame := packOne(b, tn)

		if inRow == tn.Pack.GroupsPerRow {
			cursorX = 0
			cursorY += rowHeight + tn.Pack.GroupGap
			rowHeight = 0
			inRow = 0
		}

		bounds := model.Bounds{X: cursorX, Y: cursorY, W: frame.w, H: frame.h}
		nodeIDs := make([]string, len(b.members))
		for i, n := range b.members {
			nodeIDs[i] = n.ID
			rel := frame.cells[i]
			positions[n.ID] = geom.V(cursorX+rel.X, cursorY+rel.Y, 0)
		}
		groups = append(groups, model.LayoutGroup{
			ID:      "layout:" + b.key,
			Label:   b.label,
			NodeIDs: nodeIDs,
			Color:   tn.Palette[bi%len(tn.Palette)],
			Bounds:  bounds,
		})

		cursorX += frame.w + tn.Pack.GroupGap
		if frame.h > rowHeight {
			rowHeight = frame.h
		}
		inRow++
	}
	return Result{Positions: positions, Groups: groups}
}

// packedFrame is one bucket's grid: the outer frame size and the
// frame-relative center of each member cell, in member order.
type packedFrame struct {
	w, h  float64
	cells []geom.Vec3
}

func packOne(b bucket, tn config.Tuning) packedFrame {
	n := len(b.members)
	cols := tn.Pack.ColumnCap
	if n < cols {
		cols = n
	}
	if cols == 0 {
		return packedFrame{
			w: 2*tn.Pack.Padding + tn.Pack.LabelRow,
			h: 2*tn.Pack.Padding + tn.Pack.LabelRow,
		}
	}
	rows := (n + cols - 1) / cols

	colW := make([]float64, cols)
	rowH := make([]float64, rows)
	for i, m := range b.members {
		fp := m.Footprint()
		c, r := i%cols, i/cols
		if fp.W > colW[c] {
			colW[c] = fp.W
		}
		if fp.H > rowH[r] {
			rowH[r] = fp.H
		}
	}

	// Prefix offsets of each column/row edge, gaps included.
	colX := make([]float64, cols)
	x := tn.Pack.Padding
	for c := 0; c < cols; c++ {
		colX[c] = x
		x += colW[c] + tn.Pack.CellGap
	}
	rowY := make([]float64, rows)
	y := tn.Pack.Padding + tn.Pack.LabelRow
	for r := 0; r < rows; r++ {
		rowY[r] = y
		y += rowH[r] + tn.Pack.CellGap
	}

	cells := make([]geom.Vec3, n)
	for i := range b.members {
		c, r := i%cols, i/cols
		cells[i] = geom.V(colX[c]+colW[c]/2, rowY[r]+rowH[r]/2, 0)
	}

	w := colX[cols-1] + colW[cols-1] + tn.Pack.Padding
	h := rowY[rows-1] + rowH[rows-1] + tn.Pack.Padding
	return packedFrame{w: w, h: h, cells: cells}
}
