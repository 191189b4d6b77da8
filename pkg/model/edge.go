package model

import "errors"

// Validation errors shared by the model types.
var (
	errEmptyID         = errors.New("empty id")
	errPayloadCount    = errors.New("node must carry exactly one payload")
	errPayloadMismatch = errors.New("payload does not match node kind")
	errUnknownKind     = errors.New("unknown node kind")
	errDanglingEdge    = errors.New("edge endpoint is empty")
)

// EdgeType discriminates canvas edges.
type EdgeType string

const (
	// EdgeLink is a plain hyperlink-style connection between nodes.
	EdgeLink EdgeType = "link"
	// EdgeRelation is a semantic relation (entity mentioned-in article,
	// claim extracted-from article, ...).
	EdgeRelation EdgeType = "relation"
	// EdgeGroupBridge connects a chain group, as an endpoint itself, to a
	// node or another group.
	EdgeGroupBridge EdgeType = "group-bridge"
)

// CanvasEdge connects two canvas elements. Source/Target normally name node
// ids, but group-bridge edges may use a ChainGroup id as an endpoint. The
// reducer prunes edges whose endpoint disappears.
type CanvasEdge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
	Label  string   `json:"label,omitempty"`
}

// Validate checks the edge's internal consistency.
func (e CanvasEdge) Validate() error {
	if e.ID == "" {
		return errEmptyID
	}
	if e.Source == "" || e.Target == "" {
		return errDanglingEdge
	}
	return nil
}

// Touches reports whether id is one of the edge's endpoints.
func (e CanvasEdge) Touches(id string) bool {
	return e.Source == id || e.Target == id
}
