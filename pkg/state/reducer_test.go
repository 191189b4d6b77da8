package state_test

import (
	"testing"
	"time"

	"github.com/mwestveld/newscanvas/pkg/geom"
	"github.com/mwestveld/newscanvas/pkg/layout"
	"github.com/mwestveld/newscanvas/pkg/model"
	"github.com/mwestveld/newscanvas/pkg/state"
)

func entity(id, name string) model.CanvasNode {
	return model.CanvasNode{
		ID:     id,
		Kind:   model.KindEntity,
		Entity: &model.EntityPayload{Type: "org", Name: name},
	}
}

func article(id string) model.CanvasNode {
	return model.CanvasNode{
		ID:   id,
		Kind: model.KindArticle,
		Article: &model.ArticlePayload{
			Title:       "Article " + id,
			PublishedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func link(id, src, dst string) model.CanvasEdge {
	return model.CanvasEdge{ID: id, Source: src, Target: dst, Type: model.EdgeLink}
}

func seed(t *testing.T, nodes ...model.CanvasNode) state.GraphState {
	t.Helper()
	s := state.NewGraphState()
	for _, n := range nodes {
		s = state.Apply(s, state.AddNode{Node: n})
	}
	return s
}

func TestAddNodeCreatesDefaultWorkspace(t *testing.T) {
	s := seed(t, entity("a", "A"), entity("b", "B"))

	if len(s.WorkspaceGroups) != 1 {
		t.Fatalf("expected 1 workspace group, got %d", len(s.WorkspaceGroups))
	}
	wg := s.WorkspaceGroups[0]
	if wg.ID != state.DefaultWorkspaceID {
		t.Errorf("workspace id = %q", wg.ID)
	}
	if len(wg.NodeIDs) != 2 {
		t.Errorf("workspace membership = %v, want both nodes", wg.NodeIDs)
	}
}

func TestAddNodeJoinsFirstWorkspaceGroup(t *testing.T) {
	s := seed(t, entity("a", "A"))
	s = state.Apply(s, state.AddWorkspaceGroup{Group: model.WorkspaceGroup{ID: "ws2", Label: "Second"}})
	s = state.Apply(s, state.AddNode{Node: entity("b", "B")})

	if got := s.WorkspaceGroups[0].NodeIDs; len(got) != 2 {
		t.Errorf("first workspace = %v, want a and b", got)
	}
	if got := s.WorkspaceGroups[1].NodeIDs; len(got) != 0 {
		t.Errorf("second workspace = %v, want empty", got)
	}
}

func TestAddNodeNoOps(t *testing.T) {
	s := seed(t, entity("a", "A"))

	dup := state.Apply(s, state.AddNode{Node: entity("a", "Again")})
	if len(dup.Nodes) != 1 {
		t.Error("duplicate id should be a no-op")
	}

	invalid := state.Apply(s, state.AddNode{Node: model.CanvasNode{ID: "x", Kind: model.KindArticle}})
	if len(invalid.Nodes) != 1 {
		t.Error("payload-less node should be a no-op")
	}
}

// Graph with nodes A,B, edge A–B and group G={A,B}: removing A leaves no
// edges and G={B}.
func TestRemoveNodeCascades(t *testing.T) {
	s := seed(t, entity("A", "A"), entity("B", "B"))
	s = state.Apply(s, state.AddEdge{Edge: link("e", "A", "B")})
	s = state.Apply(s, state.AddGroup{Group: model.ChainGroup{ID: "G", Label: "G", NodeIDs: []string{"A", "B"}}})
	s = state.Apply(s, state.SelectNode{ID: "A"})

	s = state.Apply(s, state.RemoveNode{ID: "A"})

	if len(s.Edges) != 0 {
		t.Errorf("edges = %v, want none", s.Edges)
	}
	g, _ := s.GroupByID("G")
	if len(g.NodeIDs) != 1 || g.NodeIDs[0] != "B" {
		t.Errorf("group membership = %v, want [B]", g.NodeIDs)
	}
	if len(s.WorkspaceGroups[0].NodeIDs) != 1 {
		t.Errorf("workspace membership = %v, want [B]", s.WorkspaceGroups[0].NodeIDs)
	}
	if s.SelectedNodeID != "" {
		t.Errorf("selection = %q, want cleared", s.SelectedNodeID)
	}
}

func TestRemoveGroupCascadesBridgeEdges(t *testing.T) {
	s := seed(t, entity("a", "A"))
	s = state.Apply(s, state.AddGroup{Group: model.ChainGroup{ID: "G", Label: "G"}})
	s = state.Apply(s, state.AddEdge{Edge: model.CanvasEdge{
		ID: "bridge", Source: "G", Target: "a", Type: model.EdgeGroupBridge,
	}})
	s = state.Apply(s, state.SelectGroup{ID: "G"})

	s = state.Apply(s, state.RemoveGroup{ID: "G"})

	if len(s.Groups) != 0 {
		t.Error("group not removed")
	}
	if len(s.Edges) != 0 {
		t.Errorf("bridge edge survived: %v", s.Edges)
	}
	if s.SelectedGroupID != "" {
		t.Errorf("group selection = %q, want cleared", s.SelectedGroupID)
	}
}

func TestAddEdgeEndpointRules(t *testing.T) {
	s := seed(t, entity("a", "A"), entity("b", "B"))

	s = state.Apply(s, state.AddEdge{Edge: link("ok", "a", "b")})
	if len(s.Edges) != 1 {
		t.Fatal("valid edge rejected")
	}

	s = state.Apply(s, state.AddEdge{Edge: link("ok", "a", "b")})
	if len(s.Edges) != 1 {
		t.Error("duplicate edge id should be a no-op")
	}

	s = state.Apply(s, state.AddEdge{Edge: link("dangling", "a", "ghost")})
	if len(s.Edges) != 1 {
		t.Error("dangling edge should be a no-op")
	}

	// Group ids are valid endpoints for bridge edges.
	s = state.Apply(s, state.AddGroup{Group: model.ChainGroup{ID: "G", Label: "G"}})
	s = state.Apply(s, state.AddEdge{Edge: model.CanvasEdge{
		ID: "bridge", Source: "G", Target: "a", Type: model.EdgeGroupBridge,
	}})
	if len(s.Edges) != 2 {
		t.Error("bridge edge with group endpoint rejected")
	}
}

func TestApplyLayoutPartialUpdate(t *testing.T) {
	s := seed(t, entity("moved", "M"), entity("kept", "K"))
	s = state.Apply(s, state.MoveNode{ID: "kept", Position: geom.V(50, 60, 0)})

	s = state.Apply(s, state.ApplyLayout{
		Positions: map[string]geom.Vec3{"moved": geom.V(100, 200, 0)},
		Mode:      layout.ModeCenterOut,
	})

	moved, _ := s.NodeByID("moved")
	if moved.Position != geom.V(100, 200, 0) {
		t.Errorf("moved position = %+v", moved.Position)
	}
	kept, _ := s.NodeByID("kept")
	if kept.Position != geom.V(50, 60, 0) {
		t.Errorf("absent node should keep prior position, got %+v", kept.Position)
	}
	if s.ActiveLayoutMode != layout.ModeCenterOut {
		t.Errorf("active mode = %q", s.ActiveLayoutMode)
	}
}

func TestApplyLayoutSkipsLockedNodes(t *testing.T) {
	s := seed(t, entity("pin", "P"))
	s = state.Apply(s, state.MoveNode{ID: "pin", Position: geom.V(5, 5, 0)})
	s = state.Apply(s, state.SetNodeLocked{ID: "pin", Locked: true})

	s = state.Apply(s, state.ApplyLayout{
		Positions: map[string]geom.Vec3{"pin": geom.V(999, 999, 0)},
		Mode:      layout.ModeCenterOut,
	})

	pin, _ := s.NodeByID("pin")
	if pin.Position != geom.V(5, 5, 0) {
		t.Errorf("locked node moved by layout: %+v", pin.Position)
	}
}

func TestDrillBounds(t *testing.T) {
	s := seed(t, article("a"))
	s = state.Apply(s, state.ApplyLayout{
		Positions: map[string]geom.Vec3{},
		Mode:      layout.ModeGroupDate,
		Depth:     2,
	})

	// Already at the date bound: drill-in is a no-op.
	next := state.Apply(s, state.DrillIn{})
	if next.LayoutDepth != 2 {
		t.Errorf("depth = %d, want clamped at 2", next.LayoutDepth)
	}

	for i := 0; i < 10; i++ {
		s = state.Apply(s, state.DrillOut{})
	}
	if s.LayoutDepth != 0 {
		t.Errorf("depth = %d, want floored at 0", s.LayoutDepth)
	}

	// Location mode drills to 5.
	s = state.Apply(s, state.ApplyLayout{
		Positions: map[string]geom.Vec3{},
		Mode:      layout.ModeGroupLocation,
		Depth:     0,
	})
	for i := 0; i < 10; i++ {
		s = state.Apply(s, state.DrillIn{})
	}
	if s.LayoutDepth != 5 {
		t.Errorf("location depth = %d, want clamped at 5", s.LayoutDepth)
	}
}

func TestDrillRequiresDrillableMode(t *testing.T) {
	s := seed(t, entity("a", "A"))
	before := s.LayoutDepth
	s = state.Apply(s, state.DrillIn{})
	if s.LayoutDepth != before {
		t.Error("drill without active layout should be a no-op")
	}

	s = state.Apply(s, state.ApplyLayout{
		Positions: map[string]geom.Vec3{},
		Mode:      layout.ModeCenterOut,
	})
	s = state.Apply(s, state.DrillIn{})
	if s.LayoutDepth != 0 {
		t.Errorf("radial layout should not drill, depth = %d", s.LayoutDepth)
	}
}

func TestClearLayoutGroups(t *testing.T) {
	s := seed(t, article("a"))
	s = state.Apply(s, state.ApplyLayout{
		Positions: map[string]geom.Vec3{},
		Groups:    []model.LayoutGroup{{ID: "g", Label: "2024"}},
		Mode:      layout.ModeGroupDate,
		Depth:     2,
	})

	s = state.Apply(s, state.ClearLayoutGroups{})
	if s.ActiveLayoutMode != "" {
		t.Errorf("active mode = %q, want none", s.ActiveLayoutMode)
	}
	if s.LayoutDepth != 1 {
		t.Errorf("depth = %d, want reset to 1", s.LayoutDepth)
	}
	if len(s.LayoutGroups) != 0 {
		t.Error("layout groups survived clear")
	}
}

func TestSelectionNoOpsOnUnknownIDs(t *testing.T) {
	s := seed(t, entity("a", "A"))
	s = state.Apply(s, state.SelectNode{ID: "ghost"})
	if s.SelectedNodeID != "" {
		t.Errorf("selection = %q, want unchanged", s.SelectedNodeID)
	}
	s = state.Apply(s, state.SelectNode{ID: "a"})
	s = state.Apply(s, state.SelectNode{ID: ""})
	if s.SelectedNodeID != "" {
		t.Error("empty id should clear selection")
	}
}

func TestApplyIsPure(t *testing.T) {
	orig := seed(t, entity("a", "A"), entity("b", "B"))
	origNodes := len(orig.Nodes)
	origWS := len(orig.WorkspaceGroups[0].NodeIDs)

	_ = state.Apply(orig, state.RemoveNode{ID: "a"})
	_ = state.Apply(orig, state.MoveNode{ID: "b", Position: geom.V(9, 9, 9)})

	if len(orig.Nodes) != origNodes {
		t.Error("Apply mutated the input node slice")
	}
	if orig.Nodes[1].Position != geom.V(0, 0, 0) {
		t.Error("Apply mutated a node position in place")
	}
	if len(orig.WorkspaceGroups[0].NodeIDs) != origWS {
		t.Error("Apply mutated workspace membership in place")
	}
}

func TestUnknownActionIsNoOp(t *testing.T) {
	s := seed(t, entity("a", "A"))
	got := state.Apply(s, nil)
	if len(got.Nodes) != 1 {
		t.Error("nil action should return state unchanged")
	}
}
