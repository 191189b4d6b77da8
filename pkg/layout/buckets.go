package layout

import (
	"sort"
	"strings"
	"time"

	"github.com/mwestveld/newscanvas/pkg/model"
)

// Catch-all bucket keys. The leading underscore sorts them out of the way
// of real keys; ordering places them last explicitly regardless.
const (
	undatedKey    = "_undated"
	noLocationKey = "_no-location"
	unlinkedKey   = "_unlinked"
)

// bucket is a named node partition produced by one of the grouping modes.
// Buckets arrive at the packer already ordered; members keep the order the
// bucketer assigned.
type bucket struct {
	key     string
	label   string
	members []model.CanvasNode
}

// date format layouts per drill depth: year, month, day. Keys truncate the
// timestamp, so lexicographic key order is date order by construction.
var dateKeyLayouts = [...]string{"2006", "2006-01", "2006-01-02"}

// dateBuckets partitions nodes by truncated timestamp. Dated nodes are
// sorted ascending before bucketing; undated nodes (wrong kind, zero or
// unresolvable timestamp) collect into a final catch-all bucket.
func dateBuckets(nodes []model.CanvasNode, depth int) []bucket {
	depth = ModeGroupDate.ClampDepth(depth)
	layout := dateKeyLayouts[depth]

	type dated struct {
		node model.CanvasNode
		key  string
		ts   time.Time
	}
	var datedNodes []dated
	var undated []model.CanvasNode
	for _, n := range nodes {
		if ts, ok := n.Timestamp(); ok {
			ts = ts.UTC()
			datedNodes = append(datedNodes, dated{node: n, key: ts.Format(layout), ts: ts})
		} else {
			undated = append(undated, n)
		}
	}
	// Full-timestamp sort orders members inside each bucket too; stable
	// keeps input order within equal timestamps. Keys truncate the
	// timestamp, so bucket order follows automatically.
	sort.SliceStable(datedNodes, func(i, j int) bool {
		return datedNodes[i].ts.Before(datedNodes[j].ts)
	})

	var out []bucket
	for _, d := range datedNodes {
		if len(out) == 0 || out[len(out)-1].key != d.key {
			out = append(out, bucket{key: d.key, label: d.key})
		}
		last := &out[len(out)-1]
		last.members = append(last.members, d.node)
	}
	if len(undated) > 0 {
		out = append(out, bucket{key: undatedKey, label: "Undated", members: undated})
	}
	return out
}

// locationBuckets partitions nodes by their first hierarchical location
// path truncated to depth+1 segments. Nodes without a location land in a
// fixed catch-all sorted last; real buckets sort alphabetically by key.
func locationBuckets(nodes []model.CanvasNode, depth int) []bucket {
	depth = ModeGroupLocation.ClampDepth(depth)

	byKey := make(map[string]*bucket)
	var keys []string
	var homeless []model.CanvasNode
	for _, n := range nodes {
		paths := n.LocationPaths()
		if len(paths) == 0 {
			homeless = append(homeless, n)
			continue
		}
		key := truncatePath(paths[0], depth+1)
		b, ok := byKey[key]
		if !ok {
			b = &bucket{key: key, label: locationLabel(key)}
			byKey[key] = b
			keys = append(keys, key)
		}
		b.members = append(b.members, n)
	}
	sort.Strings(keys)

	out := make([]bucket, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	if len(homeless) > 0 {
		out = append(out, bucket{key: noLocationKey, label: "No location", members: homeless})
	}
	return out
}

// truncatePath keeps the first n segments of a slash-delimited path.
func truncatePath(path string, n int) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) > n {
		segs = segs[:n]
	}
	return "/" + strings.Join(segs, "/")
}

// locationLabel prettifies the deepest segment of a location key.
func locationLabel(key string) string {
	segs := strings.Split(strings.Trim(key, "/"), "/")
	last := segs[len(segs)-1]
	last = strings.ReplaceAll(last, "-", " ")
	if last == "" {
		return key
	}
	return strings.ToUpper(last[:1]) + last[1:]
}

// entityBuckets clusters nodes around entity anchors: each entity claims
// its adjacent non-entity nodes, first claim wins with anchors processed in
// input order. Unclaimed nodes form a final catch-all. Buckets sort
// alphabetically by anchor display name, catch-all last.
func entityBuckets(nodes []model.CanvasNode, edges []model.CanvasEdge) []bucket {
	adj := make(map[string][]string)
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}
	byID := make(map[string]model.CanvasNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	claimed := make(map[string]bool, len(nodes))
	var out []bucket
	for _, n := range nodes {
		if n.Kind != model.KindEntity {
			continue
		}
		claimed[n.ID] = true
		b := bucket{
			key:     "entity:" + n.ID,
			label:   n.DisplayName(),
			members: []model.CanvasNode{n},
		}
		for _, nbID := range adj[n.ID] {
			nb, ok := byID[nbID]
			if !ok || claimed[nbID] || nb.Kind == model.KindEntity {
				continue
			}
			claimed[nbID] = true
			b.members = append(b.members, nb)
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].label < out[j].label
	})

	var unclaimed []model.CanvasNode
	for _, n := range nodes {
		if !claimed[n.ID] {
			unclaimed = append(unclaimed, n)
		}
	}
	if len(unclaimed) > 0 {
		out = append(out, bucket{key: unlinkedKey, label: "Unlinked", members: unclaimed})
	}
	return out
}

// DepthLabel maps a (mode, depth) pair to the human granularity label shown
// in the drill UI. Depth is clamped to the mode's valid range; modes
// without drill semantics return "".
func DepthLabel(mode Mode, depth int) string {
	switch mode {
	case ModeGroupDate:
		labels := [...]string{"Year", "Month", "Day"}
		return labels[mode.ClampDepth(depth)]
	case ModeGroupLocation:
		labels := [...]string{"Top-level", "Region", "Subregion", "Country", "Area", "City"}
		return labels[mode.ClampDepth(depth)]
	}
	return ""
}
