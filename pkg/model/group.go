package model

import "github.com/mwestveld/newscanvas/pkg/geom"

// Bounds is an axis-aligned rectangle in canvas pixels, used for group
// frames and overlap tests. X/Y is the top-left corner.
type Bounds struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Intersects reports whether two rectangles overlap. Touching edges do not
// count as overlap.
func (b Bounds) Intersects(o Bounds) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W &&
		b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

// ChainGroup is a user-created visual grouping of nodes. NodeIDs is always a
// subset of the live node id set; the reducer prunes membership when a node
// is removed. A ChainGroup's own id can appear as a group-bridge edge
// endpoint.
type ChainGroup struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	NodeIDs  []string  `json:"node_ids"`
	Position geom.Vec3 `json:"position"`
	Color    string    `json:"color,omitempty"`
}

// WorkspaceGroup is the coarse drillable container representing one
// workspace's node set. A default workspace group is auto-created holding
// all nodes when none exists, and new nodes join the first workspace group.
type WorkspaceGroup struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	NodeIDs []string `json:"node_ids"`
}

// LayoutGroup is an ephemeral grouping emitted by the layout engine for the
// bucketed modes. It is regenerated on every layout application and never
// persisted; the renderer uses Bounds to draw the frame.
type LayoutGroup struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	NodeIDs []string `json:"node_ids"`
	Color   string   `json:"color"`
	Bounds  Bounds   `json:"bounds"`
}

// Contains reports whether the group currently includes the node id.
func (g ChainGroup) Contains(id string) bool {
	for _, nid := range g.NodeIDs {
		if nid == id {
			return true
		}
	}
	return false
}
