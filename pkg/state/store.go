package state

import (
	"github.com/mwestveld/newscanvas/pkg/config"
	"github.com/mwestveld/newscanvas/pkg/geom"
	"github.com/mwestveld/newscanvas/pkg/layout"
	"github.com/mwestveld/newscanvas/pkg/model"
	"github.com/mwestveld/newscanvas/pkg/overlap"
)

// Store is the single mutation entry point for the canvas. It owns one
// GraphState and funnels every change through Apply. The store is
// single-writer by construction (UI thread only), so it carries no locks;
// State returns a snapshot that stays valid across later dispatches.
type Store struct {
	state  GraphState
	tuning config.Tuning
}

// NewStore creates a store with an empty canvas.
func NewStore() *Store {
	return &Store{
		state:  NewGraphState(),
		tuning: config.DefaultTuning(),
	}
}

// SetTuning replaces the layout tuning used by Reflow (hot-reloaded from
// the config watcher).
func (st *Store) SetTuning(t config.Tuning) {
	st.tuning = t
}

// State returns the current snapshot.
func (st *Store) State() GraphState {
	return st.state
}

// Dispatch applies an action.
func (st *Store) Dispatch(a Action) {
	st.state = Apply(st.state, a)
}

// Mount seeds the canvas with imported nodes/edges/groups and runs the
// one-time auto-spread if the imported positions collide.
func (st *Store) Mount(nodes []model.CanvasNode, edges []model.CanvasEdge, groups []model.ChainGroup) {
	for _, n := range nodes {
		st.Dispatch(AddNode{Node: n})
	}
	for _, e := range edges {
		st.Dispatch(AddEdge{Edge: e})
	}
	for _, g := range groups {
		st.Dispatch(AddGroup{Group: g})
	}
	if overlap.HasOverlap(st.state.Nodes) {
		spread := overlap.AutoSpread(st.state.Nodes, st.state.Camera.Position)
		for id, p := range spread {
			// Map iteration order is irrelevant here: each node gets
			// exactly one position.
			st.Dispatch(MoveNode{ID: id, Position: p})
		}
	}
}

// MoveNode moves a node to a world position.
func (st *Store) MoveNode(id string, p geom.Vec3) {
	st.Dispatch(MoveNode{ID: id, Position: p})
}

// SelectNode selects a node (empty id clears the selection).
func (st *Store) SelectNode(id string) {
	st.Dispatch(SelectNode{ID: id})
}

// AddEdge adds an edge between live endpoints.
func (st *Store) AddEdge(e model.CanvasEdge) {
	st.Dispatch(AddEdge{Edge: e})
}

// SetView switches render surface and presentation mode together.
func (st *Store) SetView(mode model.RenderMode, presentation bool) {
	st.Dispatch(SetRenderMode{Mode: mode})
	st.Dispatch(SetPresentationMode{On: presentation})
}

// Reflow computes the layout for mode over the current snapshot and applies
// it atomically. The engine's position map plus the reducer's partial-update
// rule means nodes the engine skips keep their prior position.
func (st *Store) Reflow(mode layout.Mode, rootID string) {
	s := st.state
	res := layout.Compute(mode, s.Nodes, s.Edges, layout.Options{
		RootID:   rootID,
		Depth:    mode.ClampDepth(s.LayoutDepth),
		Mode3D:   s.RenderMode == model.Render3D,
		LowPower: s.Device.LowPower,
		Tuning:   st.tuning,
		Ranking:  layout.RankDegree,
	})
	st.Dispatch(ApplyLayout{
		Positions: res.Positions,
		Groups:    res.Groups,
		Mode:      mode,
		Depth:     mode.ClampDepth(s.LayoutDepth),
	})
}

// DrillIn steps one level deeper in the active drillable layout and
// reflows. No-op at the bound or without an active drillable layout.
func (st *Store) DrillIn() {
	st.drill(DrillIn{})
}

// DrillOut steps one level coarser and reflows.
func (st *Store) DrillOut() {
	st.drill(DrillOut{})
}

func (st *Store) drill(a Action) {
	before := st.state.LayoutDepth
	st.Dispatch(a)
	if st.state.LayoutDepth == before {
		return
	}
	st.Reflow(st.state.ActiveLayoutMode, "")
}

// ClearLayout discards layout groups and metadata; node positions stay
// where the last layout (or the user) put them.
func (st *Store) ClearLayout() {
	st.Dispatch(ClearLayoutGroups{})
}

// DepthLabel returns the human label for the active layout's drill depth,
// or "" when no drillable layout is active.
func (st *Store) DepthLabel() string {
	s := st.state
	if !s.ActiveLayoutMode.Drillable() {
		return ""
	}
	return layout.DepthLabel(s.ActiveLayoutMode, s.LayoutDepth)
}
