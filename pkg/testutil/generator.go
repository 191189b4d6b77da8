// Package testutil provides test fixture generators for canvas topologies.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mwestveld/newscanvas/pkg/model"
)

// CanvasFixture is a self-contained node/edge set ready to mount into a store
// or feed straight to the layout engine.
type CanvasFixture struct {
	Description string
	Nodes       []model.CanvasNode
	Edges       []model.CanvasEdge
}

// GeneratorConfig controls fixture generation.
type GeneratorConfig struct {
	Seed     int64     // Random seed for determinism (0 = use current time)
	IDPrefix string    // Prefix for node IDs (default: "test")
	BaseTime time.Time // Base time for article dates (default: fixed time)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     42,
		IDPrefix: "test",
		BaseTime: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Generator creates deterministic canvas fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.BaseTime.IsZero() {
		cfg.BaseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "test"
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

func (g *Generator) id(format string, args ...any) string {
	return g.cfg.IDPrefix + "-" + fmt.Sprintf(format, args...)
}

// Article returns an article node with the given publication offset from
// BaseTime. A negative day offset produces an undated article.
func (g *Generator) Article(idx int, dayOffset int) model.CanvasNode {
	var published time.Time
	if dayOffset >= 0 {
		published = g.cfg.BaseTime.AddDate(0, 0, dayOffset)
	}
	return model.CanvasNode{
		ID:   g.id("article-%d", idx),
		Kind: model.KindArticle,
		Article: &model.ArticlePayload{
			Title:       fmt.Sprintf("Article %d", idx),
			Source:      "wire",
			PublishedAt: published,
		},
	}
}

// Note returns a note node created at BaseTime.
func (g *Generator) Note(idx int) model.CanvasNode {
	return model.CanvasNode{
		ID:   g.id("note-%d", idx),
		Kind: model.KindNote,
		Note: &model.NotePayload{
			Title:     fmt.Sprintf("Note %d", idx),
			CreatedAt: g.cfg.BaseTime,
		},
	}
}

// Entity returns an entity node.
func (g *Generator) Entity(idx int, name string) model.CanvasNode {
	return model.CanvasNode{
		ID:   g.id("entity-%d", idx),
		Kind: model.KindEntity,
		Entity: &model.EntityPayload{
			Type: "person",
			Name: name,
		},
	}
}

// Link returns a link edge between two node IDs.
func (g *Generator) Link(idx int, source, target string) model.CanvasEdge {
	return model.CanvasEdge{
		ID:     g.id("edge-%d", idx),
		Source: source,
		Target: target,
		Type:   model.EdgeLink,
	}
}

// Star creates a hub entity with `spokes` article leaves, each linked to the
// hub. The hub carries the highest degree, so degree ranking roots here.
func (g *Generator) Star(spokes int) CanvasFixture {
	nodes := make([]model.CanvasNode, 0, spokes+1)
	edges := make([]model.CanvasEdge, 0, spokes)

	hub := g.Entity(0, "Hub")
	nodes = append(nodes, hub)
	for i := 1; i <= spokes; i++ {
		leaf := g.Article(i, i)
		nodes = append(nodes, leaf)
		edges = append(edges, g.Link(i, hub.ID, leaf.ID))
	}

	return CanvasFixture{
		Description: fmt.Sprintf("Star with hub entity and %d article spokes", spokes),
		Nodes:       nodes,
		Edges:       edges,
	}
}

// Chain creates a linear chain of articles linked head to tail.
func (g *Generator) Chain(size int) CanvasFixture {
	nodes := make([]model.CanvasNode, 0, size)
	edges := make([]model.CanvasEdge, 0, size-1)

	for i := 0; i < size; i++ {
		nodes = append(nodes, g.Article(i, i))
		if i > 0 {
			edges = append(edges, g.Link(i, nodes[i-1].ID, nodes[i].ID))
		}
	}

	return CanvasFixture{
		Description: fmt.Sprintf("Chain of %d articles, linked head to tail", size),
		Nodes:       nodes,
		Edges:       edges,
	}
}

// DatedArticles creates `count` edge-free articles spread across `months`
// distinct months, one article per day offset inside each month. Useful for
// date bucketing tests at every drill depth.
func (g *Generator) DatedArticles(count, months int) CanvasFixture {
	if months < 1 {
		months = 1
	}
	nodes := make([]model.CanvasNode, 0, count)
	for i := 0; i < count; i++ {
		month := i % months
		day := i / months
		n := g.Article(i, 0)
		n.Article.PublishedAt = g.cfg.BaseTime.AddDate(0, month, day)
		nodes = append(nodes, n)
	}
	return CanvasFixture{
		Description: fmt.Sprintf("%d articles spread across %d months", count, months),
		Nodes:       nodes,
	}
}

// LocatedMix creates articles tagged with the given location paths plus a few
// untagged notes, exercising both real buckets and the catch-all.
func (g *Generator) LocatedMix(paths []string, untagged int) CanvasFixture {
	nodes := make([]model.CanvasNode, 0, len(paths)+untagged)
	for i, p := range paths {
		n := g.Article(i, i)
		n.Article.Locations = []string{p}
		nodes = append(nodes, n)
	}
	for i := 0; i < untagged; i++ {
		nodes = append(nodes, g.Note(i))
	}
	return CanvasFixture{
		Description: fmt.Sprintf("%d located articles plus %d untagged notes", len(paths), untagged),
		Nodes:       nodes,
	}
}

// EntityClusters creates `clusters` entity anchors, each linked to `members`
// articles, plus `loose` unlinked notes for the catch-all bucket.
func (g *Generator) EntityClusters(clusters, members, loose int) CanvasFixture {
	var nodes []model.CanvasNode
	var edges []model.CanvasEdge

	edgeIdx := 0
	articleIdx := 0
	for c := 0; c < clusters; c++ {
		anchor := g.Entity(c, fmt.Sprintf("Entity %c", 'A'+c))
		nodes = append(nodes, anchor)
		for m := 0; m < members; m++ {
			art := g.Article(articleIdx, articleIdx)
			articleIdx++
			nodes = append(nodes, art)
			edges = append(edges, g.Link(edgeIdx, art.ID, anchor.ID))
			edgeIdx++
		}
	}
	for i := 0; i < loose; i++ {
		nodes = append(nodes, g.Note(i))
	}

	return CanvasFixture{
		Description: fmt.Sprintf("%d entity clusters of %d members, %d loose notes", clusters, members, loose),
		Nodes:       nodes,
		Edges:       edges,
	}
}

// Scattered creates `count` mixed-kind nodes with pseudo-random positions in
// the given square extent, many of them overlapping. Drives the overlap
// resolver and mount-time auto-spread.
func (g *Generator) Scattered(count int, extent float64) CanvasFixture {
	nodes := make([]model.CanvasNode, 0, count)
	for i := 0; i < count; i++ {
		var n model.CanvasNode
		switch i % 3 {
		case 0:
			n = g.Article(i, i)
		case 1:
			n = g.Note(i)
		default:
			n = g.Entity(i, fmt.Sprintf("Entity %d", i))
		}
		n.Position.X = (g.rng.Float64() - 0.5) * extent
		n.Position.Y = (g.rng.Float64() - 0.5) * extent
		nodes = append(nodes, n)
	}
	return CanvasFixture{
		Description: fmt.Sprintf("%d scattered nodes in a %.0fpx extent", count, extent),
		Nodes:       nodes,
	}
}
