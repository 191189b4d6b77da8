package state_test

import (
	"testing"

	"github.com/mwestveld/newscanvas/pkg/geom"
	"github.com/mwestveld/newscanvas/pkg/layout"
	"github.com/mwestveld/newscanvas/pkg/model"
	"github.com/mwestveld/newscanvas/pkg/overlap"
	"github.com/mwestveld/newscanvas/pkg/state"
)

func TestMountAutoSpreadsCollidingImports(t *testing.T) {
	st := state.NewStore()
	// Imported mock data: everything at the origin.
	st.Mount([]model.CanvasNode{
		entity("a", "A"), entity("b", "B"), entity("c", "C"), entity("d", "D"),
	}, nil, nil)

	if overlap.HasOverlap(st.State().Nodes) {
		t.Error("mount left colliding nodes")
	}
}

func TestMountKeepsNonCollidingImports(t *testing.T) {
	n1 := entity("a", "A")
	n1.Position = geom.V(0, 0, 0)
	n2 := entity("b", "B")
	n2.Position = geom.V(1000, 0, 0)

	st := state.NewStore()
	st.Mount([]model.CanvasNode{n1, n2}, nil, nil)

	got, _ := st.State().NodeByID("b")
	if got.Position != geom.V(1000, 0, 0) {
		t.Errorf("non-colliding import moved: %+v", got.Position)
	}
}

func TestReflowAppliesLayoutAndGroups(t *testing.T) {
	st := state.NewStore()
	st.Mount([]model.CanvasNode{
		entity("hub", "Hub"), entity("a", "A"), entity("b", "B"),
	}, []model.CanvasEdge{
		link("e1", "hub", "a"), link("e2", "hub", "b"),
	}, nil)

	st.Reflow(layout.ModeCenterOut, "")
	s := st.State()
	if s.ActiveLayoutMode != layout.ModeCenterOut {
		t.Errorf("active mode = %q", s.ActiveLayoutMode)
	}
	hub, _ := s.NodeByID("hub")
	if hub.Position.X != 0 || hub.Position.Y != 0 {
		t.Errorf("hub not centered: %+v", hub.Position)
	}

	st.Reflow(layout.ModeGroupEntity, "")
	s = st.State()
	if len(s.LayoutGroups) == 0 {
		t.Error("entity grouping produced no layout groups")
	}
}

func TestDrillInReflowsAtNewDepth(t *testing.T) {
	st := state.NewStore()
	st.Mount([]model.CanvasNode{article("a1"), article("a2")}, nil, nil)

	st.Reflow(layout.ModeGroupDate, "")
	if st.State().LayoutDepth != 1 {
		t.Fatalf("initial depth = %d, want default 1", st.State().LayoutDepth)
	}

	st.DrillIn()
	if st.State().LayoutDepth != 2 {
		t.Errorf("depth after drill-in = %d, want 2", st.State().LayoutDepth)
	}
	// At the bound: another drill-in leaves depth and groups untouched.
	groupsBefore := len(st.State().LayoutGroups)
	st.DrillIn()
	if st.State().LayoutDepth != 2 {
		t.Errorf("depth = %d, want still 2", st.State().LayoutDepth)
	}
	if len(st.State().LayoutGroups) != groupsBefore {
		t.Error("no-op drill regenerated groups")
	}

	st.DrillOut()
	st.DrillOut()
	if st.State().LayoutDepth != 0 {
		t.Errorf("depth = %d, want 0", st.State().LayoutDepth)
	}
}

func TestDepthLabelFollowsActiveMode(t *testing.T) {
	st := state.NewStore()
	st.Mount([]model.CanvasNode{article("a")}, nil, nil)

	if got := st.DepthLabel(); got != "" {
		t.Errorf("label without layout = %q", got)
	}

	st.Reflow(layout.ModeGroupDate, "")
	if got := st.DepthLabel(); got != "Month" {
		t.Errorf("label at default depth = %q, want Month", got)
	}
	st.DrillIn()
	if got := st.DepthLabel(); got != "Day" {
		t.Errorf("label after drill = %q, want Day", got)
	}
}

func TestClearLayoutKeepsPositions(t *testing.T) {
	st := state.NewStore()
	st.Mount([]model.CanvasNode{article("a1"), article("a2")}, nil, nil)
	st.Reflow(layout.ModeGroupDate, "")

	moved, _ := st.State().NodeByID("a1")
	st.ClearLayout()

	s := st.State()
	if s.ActiveLayoutMode != "" || len(s.LayoutGroups) != 0 {
		t.Error("clear did not reset layout metadata")
	}
	after, _ := s.NodeByID("a1")
	if after.Position != moved.Position {
		t.Error("clear moved node positions")
	}
}

func TestPositionCacheReconcile(t *testing.T) {
	st := state.NewStore()
	st.Mount([]model.CanvasNode{entity("a", "A")}, nil, nil)

	cache := state.NewPositionCache()
	// Physics integrator interpolates for a few frames.
	cache.Set("a", geom.V(10, 0, 0))
	cache.Set("a", geom.V(20, 0, 0))
	cache.Set("ghost", geom.V(1, 1, 1))

	// Canonical state untouched while the cache diverges.
	n, _ := st.State().NodeByID("a")
	if n.Position != geom.V(0, 0, 0) {
		t.Fatalf("store moved before reconcile: %+v", n.Position)
	}

	cache.Reconcile(st)
	n, _ = st.State().NodeByID("a")
	if n.Position != geom.V(20, 0, 0) {
		t.Errorf("reconciled position = %+v, want latest frame", n.Position)
	}
	if cache.Len() != 0 {
		t.Errorf("cache size after reconcile = %d, want 0", cache.Len())
	}
}

func TestSnapshotStableAcrossDispatch(t *testing.T) {
	a := entity("a", "A")
	b := entity("b", "B")
	// Far enough apart that mount-time auto-spread leaves them alone.
	b.Position = geom.V(1000, 0, 0)

	st := state.NewStore()
	st.Mount([]model.CanvasNode{a, b}, nil, nil)

	snap := st.State()
	st.MoveNode("a", geom.V(500, 0, 0))
	st.Dispatch(state.RemoveNode{ID: "b"})

	if len(snap.Nodes) != 2 {
		t.Error("earlier snapshot lost a node")
	}
	if snap.Nodes[0].Position != geom.V(0, 0, 0) {
		t.Error("earlier snapshot saw the later move")
	}
}
