// Package state owns the authoritative canvas model. All mutation flows
// through a single reducer, Apply, which is pure and total: every action
// has a defined effect, invalid references degrade to no-ops, and nothing
// in this package panics or returns an error. The Store wraps the reducer
// with the convenience operations the rest of the application calls.
package state

import (
	"github.com/mwestveld/newscanvas/pkg/config"
	"github.com/mwestveld/newscanvas/pkg/layout"
	"github.com/mwestveld/newscanvas/pkg/model"
)

// DefaultWorkspaceID names the auto-created workspace group.
const DefaultWorkspaceID = "workspace-default"

// GraphState is the aggregate canvas state. Values are treated as
// immutable snapshots: the reducer copies whatever it changes, so a
// snapshot handed to the renderer stays stable while new actions apply.
type GraphState struct {
	Nodes           []model.CanvasNode
	Edges           []model.CanvasEdge
	Groups          []model.ChainGroup
	WorkspaceGroups []model.WorkspaceGroup

	Camera           model.Camera
	RenderMode       model.RenderMode
	PresentationMode bool

	SelectedNodeID  string
	SelectedGroupID string

	// ActiveLayoutMode is empty unless a layout was applied and not yet
	// cleared. LayoutDepth only carries meaning for the drillable modes.
	ActiveLayoutMode layout.Mode
	LayoutDepth      int
	LayoutGroups     []model.LayoutGroup

	Device model.DeviceCapabilities
}

// NewGraphState returns the empty canvas with default camera and view.
func NewGraphState() GraphState {
	return GraphState{
		Camera:      model.DefaultCamera(),
		RenderMode:  model.Render2D,
		LayoutDepth: config.DefaultDepth,
	}
}

// NodeByID returns the node and whether it exists.
func (s GraphState) NodeByID(id string) (model.CanvasNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return model.CanvasNode{}, false
}

// GroupByID returns the chain group and whether it exists.
func (s GraphState) GroupByID(id string) (model.ChainGroup, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return model.ChainGroup{}, false
}

func (s GraphState) hasNode(id string) bool {
	_, ok := s.NodeByID(id)
	return ok
}

func (s GraphState) hasGroup(id string) bool {
	_, ok := s.GroupByID(id)
	return ok
}

// endpointExists reports whether id names a live node or chain group;
// group-bridge edges use group ids as endpoints.
func (s GraphState) endpointExists(id string) bool {
	return s.hasNode(id) || s.hasGroup(id)
}
