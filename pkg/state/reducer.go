package state

import (
	"slices"

	"github.com/mwestveld/newscanvas/pkg/config"
	"github.com/mwestveld/newscanvas/pkg/model"
)

// Apply is the transition function: given a state snapshot and an action it
// returns the next state. It never mutates its input; unknown actions and
// invalid references return the state unchanged.
func Apply(s GraphState, a Action) GraphState {
	switch act := a.(type) {
	case AddNode:
		return applyAddNode(s, act)
	case RemoveNode:
		return applyRemoveNode(s, act)
	case MoveNode:
		return applyMoveNode(s, act)
	case SetNodeLocked:
		return applySetNodeLocked(s, act)
	case SelectNode:
		return applySelectNode(s, act)
	case AddEdge:
		return applyAddEdge(s, act)
	case RemoveEdge:
		return applyRemoveEdge(s, act)
	case AddGroup:
		return applyAddGroup(s, act)
	case RemoveGroup:
		return applyRemoveGroup(s, act)
	case MoveGroup:
		return applyMoveGroup(s, act)
	case SelectGroup:
		return applySelectGroup(s, act)
	case AddWorkspaceGroup:
		return applyAddWorkspaceGroup(s, act)
	case SetRenderMode:
		s.RenderMode = act.Mode
		return s
	case SetPresentationMode:
		s.PresentationMode = act.On
		return s
	case SetCamera:
		s.Camera = act.Camera
		return s
	case SetDeviceCapabilities:
		s.Device = act.Device
		return s
	case ApplyLayout:
		return applyLayout(s, act)
	case SetLayoutDepth:
		return applySetLayoutDepth(s, act)
	case ClearLayoutGroups:
		s.LayoutGroups = nil
		s.ActiveLayoutMode = ""
		s.LayoutDepth = config.DefaultDepth
		return s
	case DrillIn:
		return applyDrill(s, 1)
	case DrillOut:
		return applyDrill(s, -1)
	default:
		return s
	}
}

func applyAddNode(s GraphState, a AddNode) GraphState {
	if a.Node.ID == "" || s.hasNode(a.Node.ID) {
		return s
	}
	if a.Node.Validate() != nil {
		return s
	}
	s.Nodes = append(slices.Clone(s.Nodes), a.Node)

	if len(s.WorkspaceGroups) == 0 {
		ids := make([]string, len(s.Nodes))
		for i, n := range s.Nodes {
			ids[i] = n.ID
		}
		s.WorkspaceGroups = []model.WorkspaceGroup{{
			ID:      DefaultWorkspaceID,
			Label:   "Workspace",
			NodeIDs: ids,
		}}
		return s
	}
	wgs := slices.Clone(s.WorkspaceGroups)
	first := wgs[0]
	first.NodeIDs = append(slices.Clone(first.NodeIDs), a.Node.ID)
	wgs[0] = first
	s.WorkspaceGroups = wgs
	return s
}

func applyRemoveNode(s GraphState, a RemoveNode) GraphState {
	if !s.hasNode(a.ID) {
		return s
	}
	s.Nodes = filterNodes(s.Nodes, a.ID)
	s.Edges = filterEdgesTouching(s.Edges, a.ID)
	s.Groups = pruneChainMembership(s.Groups, a.ID)
	s.WorkspaceGroups = pruneWorkspaceMembership(s.WorkspaceGroups, a.ID)
	if s.SelectedNodeID == a.ID {
		s.SelectedNodeID = ""
	}
	return s
}

func applyMoveNode(s GraphState, a MoveNode) GraphState {
	idx := slices.IndexFunc(s.Nodes, func(n model.CanvasNode) bool { return n.ID == a.ID })
	if idx < 0 {
		return s
	}
	nodes := slices.Clone(s.Nodes)
	nodes[idx].Position = a.Position
	s.Nodes = nodes
	return s
}

func applySetNodeLocked(s GraphState, a SetNodeLocked) GraphState {
	idx := slices.IndexFunc(s.Nodes, func(n model.CanvasNode) bool { return n.ID == a.ID })
	if idx < 0 {
		return s
	}
	nodes := slices.Clone(s.Nodes)
	nodes[idx].Locked = a.Locked
	s.Nodes = nodes
	return s
}

func applySelectNode(s GraphState, a SelectNode) GraphState {
	if a.ID != "" && !s.hasNode(a.ID) {
		return s
	}
	s.SelectedNodeID = a.ID
	if a.ID != "" {
		s.SelectedGroupID = ""
	}
	return s
}

func applyAddEdge(s GraphState, a AddEdge) GraphState {
	e := a.Edge
	if e.Validate() != nil {
		return s
	}
	for _, existing := range s.Edges {
		if existing.ID == e.ID {
			return s
		}
	}
	if !s.endpointExists(e.Source) || !s.endpointExists(e.Target) {
		return s
	}
	s.Edges = append(slices.Clone(s.Edges), e)
	return s
}

func applyRemoveEdge(s GraphState, a RemoveEdge) GraphState {
	idx := slices.IndexFunc(s.Edges, func(e model.CanvasEdge) bool { return e.ID == a.ID })
	if idx < 0 {
		return s
	}
	s.Edges = slices.Delete(slices.Clone(s.Edges), idx, idx+1)
	return s
}

func applyAddGroup(s GraphState, a AddGroup) GraphState {
	g := a.Group
	if g.ID == "" || s.hasGroup(g.ID) {
		return s
	}
	// Enforce the subset invariant on entry.
	live := make([]string, 0, len(g.NodeIDs))
	for _, id := range g.NodeIDs {
		if s.hasNode(id) && !slices.Contains(live, id) {
			live = append(live, id)
		}
	}
	g.NodeIDs = live
	s.Groups = append(slices.Clone(s.Groups), g)
	return s
}

func applyRemoveGroup(s GraphState, a RemoveGroup) GraphState {
	if !s.hasGroup(a.ID) {
		return s
	}
	groups := make([]model.ChainGroup, 0, len(s.Groups)-1)
	for _, g := range s.Groups {
		if g.ID != a.ID {
			groups = append(groups, g)
		}
	}
	s.Groups = groups
	// A chain group can be an edge endpoint (group-bridge); cascade.
	s.Edges = filterEdgesTouching(s.Edges, a.ID)
	if s.SelectedGroupID == a.ID {
		s.SelectedGroupID = ""
	}
	return s
}

func applyMoveGroup(s GraphState, a MoveGroup) GraphState {
	idx := slices.IndexFunc(s.Groups, func(g model.ChainGroup) bool { return g.ID == a.ID })
	if idx < 0 {
		return s
	}
	groups := slices.Clone(s.Groups)
	groups[idx].Position = a.Position
	s.Groups = groups
	return s
}

func applySelectGroup(s GraphState, a SelectGroup) GraphState {
	if a.ID != "" && !s.hasGroup(a.ID) {
		return s
	}
	s.SelectedGroupID = a.ID
	if a.ID != "" {
		s.SelectedNodeID = ""
	}
	return s
}

func applyAddWorkspaceGroup(s GraphState, a AddWorkspaceGroup) GraphState {
	g := a.Group
	if g.ID == "" {
		return s
	}
	for _, existing := range s.WorkspaceGroups {
		if existing.ID == g.ID {
			return s
		}
	}
	live := make([]string, 0, len(g.NodeIDs))
	for _, id := range g.NodeIDs {
		if s.hasNode(id) && !slices.Contains(live, id) {
			live = append(live, id)
		}
	}
	g.NodeIDs = live
	s.WorkspaceGroups = append(slices.Clone(s.WorkspaceGroups), g)
	return s
}

func applyLayout(s GraphState, a ApplyLayout) GraphState {
	nodes := slices.Clone(s.Nodes)
	for i, n := range nodes {
		if n.Locked {
			continue
		}
		if p, ok := a.Positions[n.ID]; ok {
			nodes[i].Position = p
		}
	}
	s.Nodes = nodes
	s.ActiveLayoutMode = a.Mode
	s.LayoutDepth = a.Mode.ClampDepth(a.Depth)
	s.LayoutGroups = a.Groups
	return s
}

func applySetLayoutDepth(s GraphState, a SetLayoutDepth) GraphState {
	if !s.ActiveLayoutMode.Drillable() {
		return s
	}
	s.LayoutDepth = s.ActiveLayoutMode.ClampDepth(a.Depth)
	return s
}

func applyDrill(s GraphState, delta int) GraphState {
	if !s.ActiveLayoutMode.Drillable() {
		return s
	}
	next := s.ActiveLayoutMode.ClampDepth(s.LayoutDepth + delta)
	if next == s.LayoutDepth {
		return s
	}
	s.LayoutDepth = next
	return s
}

func filterNodes(nodes []model.CanvasNode, id string) []model.CanvasNode {
	out := make([]model.CanvasNode, 0, len(nodes)-1)
	for _, n := range nodes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

func filterEdgesTouching(edges []model.CanvasEdge, id string) []model.CanvasEdge {
	out := make([]model.CanvasEdge, 0, len(edges))
	for _, e := range edges {
		if !e.Touches(id) {
			out = append(out, e)
		}
	}
	return out
}

func pruneChainMembership(groups []model.ChainGroup, id string) []model.ChainGroup {
	out := slices.Clone(groups)
	for i, g := range out {
		if g.Contains(id) {
			ids := make([]string, 0, len(g.NodeIDs)-1)
			for _, nid := range g.NodeIDs {
				if nid != id {
					ids = append(ids, nid)
				}
			}
			out[i].NodeIDs = ids
		}
	}
	return out
}

func pruneWorkspaceMembership(groups []model.WorkspaceGroup, id string) []model.WorkspaceGroup {
	out := slices.Clone(groups)
	for i, g := range out {
		if slices.Contains(g.NodeIDs, id) {
			ids := make([]string, 0, len(g.NodeIDs)-1)
			for _, nid := range g.NodeIDs {
				if nid != id {
					ids = append(ids, nid)
				}
			}
			out[i].NodeIDs = ids
		}
	}
	return out
}
