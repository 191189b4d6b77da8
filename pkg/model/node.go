// Package model defines the canvas data types: polymorphic nodes, edges,
// user groups, workspace groups and the ephemeral layout groups the engine
// produces. Types here are plain data; all mutation goes through the state
// package's reducer.
package model

import (
	"strings"
	"time"

	"github.com/mwestveld/newscanvas/pkg/geom"
)

// NodeKind discriminates the CanvasNode tagged union. The set is closed:
// adding a kind means adding a payload struct and updating every exhaustive
// switch over NodeKind.
type NodeKind string

const (
	KindArticle   NodeKind = "article"
	KindNote      NodeKind = "note"
	KindEntity    NodeKind = "entity"
	KindNarrative NodeKind = "narrative"
	KindClaim     NodeKind = "claim"
)

// ArticlePayload carries article-specific fields.
type ArticlePayload struct {
	Title       string    `json:"title"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Topics      []string  `json:"topics,omitempty"`
	// Locations are hierarchical slash-delimited paths such as
	// "/world/europe/western-europe".
	Locations []string `json:"locations,omitempty"`
}

// NotePayload carries user-note fields.
type NotePayload struct {
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Color     string    `json:"color,omitempty"`
}

// EntityPayload carries entity fields (person, organization, place...).
type EntityPayload struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NarrativePayload carries narrative fields.
type NarrativePayload struct {
	Label           string `json:"label"`
	Category        string `json:"category,omitempty"`
	EvidencePosture string `json:"evidence_posture,omitempty"`
	TemporalFocus   string `json:"temporal_focus,omitempty"`
}

// ClaimPayload carries claim fields.
type ClaimPayload struct {
	NormalizedText string `json:"normalized_text"`
	ArticleID      string `json:"article_id,omitempty"`
}

// CanvasNode is a node on the canvas. Exactly one payload pointer is non-nil
// and it must match Kind.
type CanvasNode struct {
	ID       string    `json:"id"`
	Kind     NodeKind  `json:"kind"`
	Position geom.Vec3 `json:"position"`
	Locked   bool      `json:"locked,omitempty"`

	Article   *ArticlePayload   `json:"article,omitempty"`
	Note      *NotePayload      `json:"note,omitempty"`
	Entity    *EntityPayload    `json:"entity,omitempty"`
	Narrative *NarrativePayload `json:"narrative,omitempty"`
	Claim     *ClaimPayload     `json:"claim,omitempty"`
}

// Footprint is the fixed on-canvas bounding size for a node kind, in pixels.
type Footprint struct {
	W float64
	H float64
}

// Per-kind footprints. Fixed by kind so overlap checks and bucket packing
// never need to measure rendered content.
var footprints = map[NodeKind]Footprint{
	KindArticle:   {W: 220, H: 140},
	KindNote:      {W: 200, H: 160},
	KindEntity:    {W: 160, H: 90},
	KindNarrative: {W: 240, H: 120},
	KindClaim:     {W: 260, H: 100},
}

// Footprint returns the fixed bounding size for the node's kind.
func (n CanvasNode) Footprint() Footprint {
	if fp, ok := footprints[n.Kind]; ok {
		return fp
	}
	return Footprint{W: 200, H: 120}
}

// DisplayName returns the human label for the node, per kind.
func (n CanvasNode) DisplayName() string {
	switch n.Kind {
	case KindArticle:
		if n.Article != nil {
			return n.Article.Title
		}
	case KindNote:
		if n.Note != nil {
			return n.Note.Title
		}
	case KindEntity:
		if n.Entity != nil {
			return n.Entity.Name
		}
	case KindNarrative:
		if n.Narrative != nil {
			return n.Narrative.Label
		}
	case KindClaim:
		if n.Claim != nil {
			return n.Claim.NormalizedText
		}
	}
	return n.ID
}

// Timestamp returns the date-grouping timestamp for the node and whether one
// exists: articles expose PublishedAt, notes CreatedAt, every other kind is
// undated.
func (n CanvasNode) Timestamp() (time.Time, bool) {
	switch n.Kind {
	case KindArticle:
		if n.Article != nil && !n.Article.PublishedAt.IsZero() {
			return n.Article.PublishedAt, true
		}
	case KindNote:
		if n.Note != nil && !n.Note.CreatedAt.IsZero() {
			return n.Note.CreatedAt, true
		}
	}
	return time.Time{}, false
}

// LocationPaths returns the node's hierarchical location paths, normalized
// to lower case with a single leading slash. Non-article kinds have none.
func (n CanvasNode) LocationPaths() []string {
	if n.Kind != KindArticle || n.Article == nil {
		return nil
	}
	paths := make([]string, 0, len(n.Article.Locations))
	for _, raw := range n.Article.Locations {
		p := strings.ToLower(strings.TrimSpace(raw))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		paths = append(paths, strings.TrimRight(p, "/"))
	}
	return paths
}

// Validate checks the node's internal consistency: non-empty id, known kind,
// and exactly one payload matching the kind.
func (n CanvasNode) Validate() error {
	if n.ID == "" {
		return errEmptyID
	}
	set := 0
	for _, p := range []bool{
		n.Article != nil, n.Note != nil, n.Entity != nil,
		n.Narrative != nil, n.Claim != nil,
	} {
		if p {
			set++
		}
	}
	if set != 1 {
		return errPayloadCount
	}
	switch n.Kind {
	case KindArticle:
		if n.Article == nil {
			return errPayloadMismatch
		}
	case KindNote:
		if n.Note == nil {
			return errPayloadMismatch
		}
	case KindEntity:
		if n.Entity == nil {
			return errPayloadMismatch
		}
	case KindNarrative:
		if n.Narrative == nil {
			return errPayloadMismatch
		}
	case KindClaim:
		if n.Claim == nil {
			return errPayloadMismatch
		}
	default:
		return errUnknownKind
	}
	return nil
}
