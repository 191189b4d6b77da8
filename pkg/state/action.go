package state

import (
	"github.com/mwestveld/newscanvas/pkg/geom"
	"github.com/mwestveld/newscanvas/pkg/layout"
	"github.com/mwestveld/newscanvas/pkg/model"
)

// Action is the closed set of state transitions. The reducer switches
// exhaustively over these types; adding an action means adding a case.
type Action interface {
	isAction()
}

// AddNode appends a node and enrolls it in the first workspace group,
// creating the default workspace group if none exists. Duplicate or empty
// ids are no-ops.
type AddNode struct {
	Node model.CanvasNode
}

// RemoveNode removes a node and cascades: edges touching it are pruned,
// group memberships are filtered, selection is cleared if it pointed here.
type RemoveNode struct {
	ID string
}

// MoveNode sets a node's position. Unknown ids are no-ops.
type MoveNode struct {
	ID       string
	Position geom.Vec3
}

// SetNodeLocked pins or unpins a node. Locked nodes keep their position
// through ApplyLayout; manual moves still apply.
type SetNodeLocked struct {
	ID     string
	Locked bool
}

// SelectNode sets the node selection (empty id clears it). Selecting a
// node clears any group selection.
type SelectNode struct {
	ID string
}

// AddEdge appends an edge. Both endpoints must name a live node or chain
// group; duplicates and dangling endpoints are no-ops.
type AddEdge struct {
	Edge model.CanvasEdge
}

// RemoveEdge removes an edge by id.
type RemoveEdge struct {
	ID string
}

// AddGroup appends a user chain group. Membership is filtered to live node
// ids on entry so the subset invariant holds from the start.
type AddGroup struct {
	Group model.ChainGroup
}

// RemoveGroup removes a chain group and cascades to edges that used the
// group id as an endpoint.
type RemoveGroup struct {
	ID string
}

// MoveGroup sets a chain group's anchor position.
type MoveGroup struct {
	ID       string
	Position geom.Vec3
}

// SelectGroup sets the group selection (empty id clears it) and clears any
// node selection.
type SelectGroup struct {
	ID string
}

// AddWorkspaceGroup appends a workspace group.
type AddWorkspaceGroup struct {
	Group model.WorkspaceGroup
}

// SetRenderMode switches between the 2D and 3D surfaces.
type SetRenderMode struct {
	Mode model.RenderMode
}

// SetPresentationMode toggles presentation mode.
type SetPresentationMode struct {
	On bool
}

// SetCamera replaces the camera.
type SetCamera struct {
	Camera model.Camera
}

// SetDeviceCapabilities records the host device profile, set once at mount.
type SetDeviceCapabilities struct {
	Device model.DeviceCapabilities
}

// ApplyLayout rewrites node positions from the supplied map and records the
// layout metadata. Nodes absent from the map, and locked nodes, keep their
// prior position; this partial-update behavior is intentional.
type ApplyLayout struct {
	Positions map[string]geom.Vec3
	Groups    []model.LayoutGroup
	Mode      layout.Mode
	Depth     int
}

// SetLayoutDepth sets the drill depth. Only meaningful while a drillable
// layout is active; otherwise a no-op.
type SetLayoutDepth struct {
	Depth int
}

// ClearLayoutGroups discards layout groups and metadata: mode resets to
// none, depth to the default.
type ClearLayoutGroups struct{}

// DrillIn increases the drill depth by one, clamped to the active mode's
// bound. No-op when no drillable layout is active or already at the bound.
type DrillIn struct{}

// DrillOut decreases the drill depth by one, floored at zero.
type DrillOut struct{}

func (AddNode) isAction()               {}
func (RemoveNode) isAction()            {}
func (MoveNode) isAction()              {}
func (SetNodeLocked) isAction()         {}
func (SelectNode) isAction()            {}
func (AddEdge) isAction()               {}
func (RemoveEdge) isAction()            {}
func (AddGroup) isAction()              {}
func (RemoveGroup) isAction()           {}
func (MoveGroup) isAction()             {}
func (SelectGroup) isAction()           {}
func (AddWorkspaceGroup) isAction()     {}
func (SetRenderMode) isAction()         {}
func (SetPresentationMode) isAction()   {}
func (SetCamera) isAction()             {}
func (SetDeviceCapabilities) isAction() {}
func (ApplyLayout) isAction()           {}
func (SetLayoutDepth) isAction()        {}
func (ClearLayoutGroups) isAction()     {}
func (DrillIn) isAction()               {}
func (DrillOut) isAction()              {}
