// Package distance implements the Distance Oracle: a per-source,
// radius-truncated BFS cache that answers shortest-hop-count queries and
// enumerates every shortest path tying for that hop count.
package distance

import "routesweep/internal/graph"

// Oracle answers distance and shortest-path queries against a fixed Graph.
// Per-source distance maps are computed lazily on first use and kept for
// the lifetime of the Oracle; they are never evicted.
type Oracle struct {
	g                *graph.Graph
	maxSegmentLength int
	cache            map[graph.SystemId]map[graph.SystemId]int
}

// DefaultMaxSegmentLength is the default BFS truncation radius.
const DefaultMaxSegmentLength = 12

// New returns an Oracle over g truncating BFS at maxSegmentLength hops.
func New(g *graph.Graph, maxSegmentLength int) *Oracle {
	if maxSegmentLength <= 0 {
		maxSegmentLength = DefaultMaxSegmentLength
	}
	return &Oracle{
		g:                g,
		maxSegmentLength: maxSegmentLength,
		cache:            make(map[graph.SystemId]map[graph.SystemId]int),
	}
}

func (o *Oracle) distanceMap(source graph.SystemId) map[graph.SystemId]int {
	if m, ok := o.cache[source]; ok {
		return m
	}
	m := bfs(o.g, source, o.maxSegmentLength)
	o.cache[source] = m
	return m
}

// bfs performs a plain breadth-first search from source, truncated at
// maxDepth hops.
func bfs(g *graph.Graph, source graph.SystemId, maxDepth int) map[graph.SystemId]int {
	dist := map[graph.SystemId]int{source: 0}
	queue := []graph.SystemId{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		d := dist[current]
		if d >= maxDepth {
			continue
		}
		for _, n := range g.Neighbors(current) {
			if _, seen := dist[n]; !seen {
				dist[n] = d + 1
				queue = append(queue, n)
			}
		}
	}
	return dist
}

// Distance returns the shortest hop count between a and b, or ok=false if
// it exceeds the configured radius. Querying (a,b) or (b,a) returns the
// same value; both sides hit the same underlying symmetric BFS.
func (o *Oracle) Distance(a, b graph.SystemId) (int, bool) {
	if _, cachedA := o.cache[a]; !cachedA {
		if m, cachedB := o.cache[b]; cachedB {
			d, ok := m[a]
			return d, ok
		}
	}
	d, ok := o.distanceMap(a)[b]
	return d, ok
}

// ShortestPaths returns every path of length Distance(a,b) between a and b.
// Each returned path starts at a and ends at b with every consecutive pair
// adjacent in the graph. Returns nil if b is unreachable from a within the
// configured radius. Order is deterministic (ascending SystemId at each
// branch point) but callers must not otherwise depend on it.
func (o *Oracle) ShortestPaths(a, b graph.SystemId) [][]graph.SystemId {
	dm := o.distanceMap(a)
	if _, ok := dm[b]; !ok {
		return nil
	}
	memo := make(map[graph.SystemId][][]graph.SystemId)
	var build func(node graph.SystemId) [][]graph.SystemId
	build = func(node graph.SystemId) [][]graph.SystemId {
		if cached, ok := memo[node]; ok {
			return cached
		}
		d := dm[node]
		if d == 0 {
			return [][]graph.SystemId{{node}}
		}
		var out [][]graph.SystemId
		for _, predecessor := range o.g.Neighbors(node) {
			pd, ok := dm[predecessor]
			if !ok || pd != d-1 {
				continue
			}
			for _, prefix := range build(predecessor) {
				path := make([]graph.SystemId, len(prefix)+1)
				copy(path, prefix)
				path[len(prefix)] = node
				out = append(out, path)
			}
		}
		memo[node] = out
		return out
	}
	return build(b)
}
