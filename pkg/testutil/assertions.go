package testutil

import (
	"testing"

	"github.com/mwestveld/newscanvas/pkg/geom"
	"github.com/mwestveld/newscanvas/pkg/model"
)

// AssertNodeCount verifies the expected number of nodes.
func AssertNodeCount(t *testing.T, nodes []model.CanvasNode, expected int) {
	t.Helper()
	if len(nodes) != expected {
		t.Errorf("expected %d nodes, got %d", expected, len(nodes))
	}
}

// AssertNoDuplicateIDs verifies all node IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, nodes []model.CanvasNode) {
	t.Helper()
	seen := make(map[string]bool)
	for _, n := range nodes {
		if seen[n.ID] {
			t.Errorf("duplicate node ID: %s", n.ID)
		}
		seen[n.ID] = true
	}
}

// AssertAllValid verifies all nodes pass validation.
func AssertAllValid(t *testing.T, nodes []model.CanvasNode) {
	t.Helper()
	for i, n := range nodes {
		if err := n.Validate(); err != nil {
			t.Errorf("node %d (%s) invalid: %v", i, n.ID, err)
		}
	}
}

// AssertEdgeExists verifies that an edge connects the two node IDs, in either
// direction.
func AssertEdgeExists(t *testing.T, edges []model.CanvasEdge, a, b string) {
	t.Helper()
	for _, e := range edges {
		if (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a) {
			return
		}
	}
	t.Errorf("expected edge between %s and %s not found", a, b)
}

// AssertPositionsComplete verifies the position map covers every node exactly.
func AssertPositionsComplete(t *testing.T, nodes []model.CanvasNode, positions map[string]geom.Vec3) {
	t.Helper()
	for _, n := range nodes {
		if _, ok := positions[n.ID]; !ok {
			t.Errorf("node %s missing from positions", n.ID)
		}
	}
	if len(positions) != len(nodes) {
		t.Errorf("positions has %d entries, want %d", len(positions), len(nodes))
	}
}

// AssertNoOverlap verifies no pair of node footprints intersects at the given
// positions. Touching edges do not count as overlap.
func AssertNoOverlap(t *testing.T, nodes []model.CanvasNode, positions map[string]geom.Vec3) {
	t.Helper()
	bounds := make([]model.Bounds, len(nodes))
	for i, n := range nodes {
		p, ok := positions[n.ID]
		if !ok {
			p = n.Position
		}
		fp := n.Footprint()
		bounds[i] = model.Bounds{X: p.X - fp.W/2, Y: p.Y - fp.H/2, W: fp.W, H: fp.H}
	}
	for i := range bounds {
		for j := i + 1; j < len(bounds); j++ {
			if bounds[i].Intersects(bounds[j]) {
				t.Errorf("nodes %s and %s overlap", nodes[i].ID, nodes[j].ID)
			}
		}
	}
}

// AssertGroupCoverage verifies every node ID appears in exactly one group.
func AssertGroupCoverage(t *testing.T, nodes []model.CanvasNode, groups []model.LayoutGroup) {
	t.Helper()
	count := make(map[string]int, len(nodes))
	for _, g := range groups {
		for _, id := range g.NodeIDs {
			count[id]++
		}
	}
	for _, n := range nodes {
		switch count[n.ID] {
		case 0:
			t.Errorf("node %s not covered by any group", n.ID)
		case 1:
		default:
			t.Errorf("node %s covered by %d groups", n.ID, count[n.ID])
		}
	}
}

// AssertMembersInside verifies each group member's position falls inside its
// group frame.
func AssertMembersInside(t *testing.T, groups []model.LayoutGroup, positions map[string]geom.Vec3) {
	t.Helper()
	for _, g := range groups {
		for _, id := range g.NodeIDs {
			p, ok := positions[id]
			if !ok {
				t.Errorf("group %s member %s missing from positions", g.ID, id)
				continue
			}
			if p.X < g.Bounds.X || p.X > g.Bounds.X+g.Bounds.W ||
				p.Y < g.Bounds.Y || p.Y > g.Bounds.Y+g.Bounds.H {
				t.Errorf("group %s member %s at (%.1f, %.1f) outside frame %+v",
					g.ID, id, p.X, p.Y, g.Bounds)
			}
		}
	}
}

// AssertVecNear verifies two vectors are within eps on every axis.
func AssertVecNear(t *testing.T, got, want geom.Vec3, eps float64) {
	t.Helper()
	if diff := geom.Sub(got, want); geom.Length(diff) > eps {
		t.Errorf("vector %+v not within %g of %+v", got, eps, want)
	}
}
