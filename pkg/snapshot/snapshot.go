// Package snapshot reads and writes canvas documents as JSON. A document
// is the import/export surface of the core: plain node/edge/group
// collections plus the view settings, with none of the ephemeral layout
// state. Backend persistence lives elsewhere; this format feeds the
// inspector CLI, tests and manual exchange of canvases.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/mwestveld/newscanvas/pkg/model"
	"github.com/mwestveld/newscanvas/pkg/state"
)

// Version is the current document format version.
const Version = 1

// Document is a canvas snapshot.
type Document struct {
	Version    int                    `json:"version"`
	Nodes      []model.CanvasNode     `json:"nodes"`
	Edges      []model.CanvasEdge     `json:"edges,omitempty"`
	Groups     []model.ChainGroup     `json:"groups,omitempty"`
	Workspaces []model.WorkspaceGroup `json:"workspaces,omitempty"`
	Camera     model.Camera           `json:"camera"`
	RenderMode model.RenderMode       `json:"render_mode,omitempty"`
}

// FromState captures the durable parts of a graph state.
func FromState(s state.GraphState) Document {
	return Document{
		Version:    Version,
		Nodes:      s.Nodes,
		Edges:      s.Edges,
		Groups:     s.Groups,
		Workspaces: s.WorkspaceGroups,
		Camera:     s.Camera,
		RenderMode: s.RenderMode,
	}
}

// Mount seeds a store from the document. Invalid nodes and dangling edges
// degrade to no-ops inside the reducer, so a hand-edited document cannot
// corrupt the canvas.
func (d Document) Mount(st *state.Store) {
	st.Mount(d.Nodes, d.Edges, d.Groups)
	// Stored workspaces are seeded after the nodes so membership survives
	// the reducer's live-node pruning. Adding the first node auto-creates
	// the default workspace; AddWorkspaceGroup dedups it by ID.
	for _, ws := range d.Workspaces {
		st.Dispatch(state.AddWorkspaceGroup{Group: ws})
	}
	if d.Camera.Zoom > 0 {
		st.Dispatch(state.SetCamera{Camera: d.Camera})
	}
	if d.RenderMode != "" {
		st.Dispatch(state.SetRenderMode{Mode: d.RenderMode})
	}
}

// Load reads a document from path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read snapshot: %w", err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("parse snapshot: %w", err)
	}
	if d.Version > Version {
		return Document{}, fmt.Errorf("snapshot version %d is newer than supported %d", d.Version, Version)
	}
	return d, nil
}

// Save writes a document to path, creating parent directories.
func Save(path string, d Document) error {
	if d.Version == 0 {
		d.Version = Version
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
