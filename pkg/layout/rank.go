package layout

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/mwestveld/newscanvas/pkg/model"
)

// canvasGraph pairs a gonum graph with the id<->index mapping for a node
// snapshot. Indices follow input order, which is what every deterministic
// tie-break in this package relies on.
type canvasGraph struct {
	nodes []model.CanvasNode
	index map[string]int64
	ug    *simple.UndirectedGraph
}

// buildGraph builds the undirected adjacency used by BFS. Edges whose
// endpoints are not both live node ids (group-bridge endpoints, stale data)
// are skipped; self-loops are skipped because simple graphs reject them.
func buildGraph(nodes []model.CanvasNode, edges []model.CanvasEdge) *canvasGraph {
	cg := &canvasGraph{
		nodes: nodes,
		index: make(map[string]int64, len(nodes)),
		ug:    simple.NewUndirectedGraph(),
	}
	for i, n := range nodes {
		cg.index[n.ID] = int64(i)
		cg.ug.AddNode(simple.Node(int64(i)))
	}
	for _, e := range edges {
		si, ok := cg.index[e.Source]
		if !ok {
			continue
		}
		ti, ok := cg.index[e.Target]
		if !ok || si == ti {
			continue
		}
		cg.ug.SetEdge(simple.Edge{F: simple.Node(si), T: simple.Node(ti)})
	}
	return cg
}

// degrees counts edges touching each node, both directions. Unlike the
// simple graph, this counts parallel edges, matching the importance model:
// an article linked twice to the same entity is more central than one
// linked once.
func degrees(nodes []model.CanvasNode, edges []model.CanvasEdge) map[string]int {
	deg := make(map[string]int, len(nodes))
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		deg[n.ID] = 0
		ids[n.ID] = true
	}
	for _, e := range edges {
		if ids[e.Source] {
			deg[e.Source]++
		}
		if ids[e.Target] {
			deg[e.Target]++
		}
	}
	return deg
}

// topRanked returns the id of the most important node under the chosen
// ranking, ties broken by input order.
func topRanked(nodes []model.CanvasNode, edges []model.CanvasEdge, ranking Ranking) string {
	if len(nodes) == 0 {
		return ""
	}
	if ranking == RankPageRank {
		return topPageRank(nodes, edges)
	}
	deg := degrees(nodes, edges)
	best := nodes[0].ID
	for _, n := range nodes[1:] {
		if deg[n.ID] > deg[best] {
			best = n.ID
		}
	}
	return best
}

// topPageRank ranks over a symmetrized directed graph: every canvas edge
// contributes both directions, so authority flows regardless of how the
// edge was authored.
func topPageRank(nodes []model.CanvasNode, edges []model.CanvasEdge) string {
	index := make(map[string]int64, len(nodes))
	dg := simple.NewDirectedGraph()
	for i, n := range nodes {
		index[n.ID] = int64(i)
		dg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range edges {
		si, ok := index[e.Source]
		if !ok {
			continue
		}
		ti, ok := index[e.Target]
		if !ok || si == ti {
			continue
		}
		dg.SetEdge(simple.Edge{F: simple.Node(si), T: simple.Node(ti)})
		dg.SetEdge(simple.Edge{F: simple.Node(ti), T: simple.Node(si)})
	}
	pr := network.PageRank(dg, 0.85, 1e-6)
	best := nodes[0].ID
	bestScore := pr[index[best]]
	for _, n := range nodes[1:] {
		if s := pr[index[n.ID]]; s > bestScore {
			best = n.ID
			bestScore = s
		}
	}
	return best
}

// rings runs BFS from root and returns the nodes grouped by BFS distance,
// each ring sorted by input order. Nodes unreachable from the root form a
// final synthetic ring.
func (cg *canvasGraph) rings(rootID string) [][]model.CanvasNode {
	rootIdx, ok := cg.index[rootID]
	if !ok {
		return nil
	}

	depth := make(map[int64]int, len(cg.nodes))
	bfs := traverse.BreadthFirst{}
	bfs.Walk(cg.ug, simple.Node(rootIdx), func(n graph.Node, d int) bool {
		depth[n.ID()] = d
		return false
	})

	maxDepth := 0
	for _, d := range depth {
		if d > maxDepth {
			maxDepth = d
		}
	}

	ringed := make([][]model.CanvasNode, maxDepth+1)
	var unreachable []model.CanvasNode
	// Iterate input order so every ring stays insertion-sorted regardless
	// of gonum's traversal order.
	for i, n := range cg.nodes {
		if d, ok := depth[int64(i)]; ok {
			ringed[d] = append(ringed[d], n)
		} else {
			unreachable = append(unreachable, n)
		}
	}
	if len(unreachable) > 0 {
		ringed = append(ringed, unreachable)
	}
	return ringed
}
