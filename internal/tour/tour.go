// Package tour resolves round-trip tours through a required set of
// waypoint systems: the §4.4 waypoint-order resolver (used by the
// powerset search engine) and the §4.5 depth-bounded DFS variant (used by
// the adjacency-driven search engine).
package tour

import (
	"routesweep/internal/distance"
	"routesweep/internal/graph"
)

// SegmentLengths sums the shortest-hop distance of each leg of the closed
// walk origin -> requiredOrder... -> origin. ok is false if any leg exceeds
// the Distance Oracle's radius. An empty requiredOrder is the trivial
// zero-length tour.
func SegmentLengths(oracle *distance.Oracle, origin graph.SystemId, requiredOrder []graph.SystemId) (int, bool) {
	if len(requiredOrder) == 0 {
		return 0, true
	}
	waypoints := waypointSequence(origin, requiredOrder)
	total := 0
	for i := 0; i+1 < len(waypoints); i++ {
		d, ok := oracle.Distance(waypoints[i], waypoints[i+1])
		if !ok {
			return 0, false
		}
		total += d
	}
	return total, true
}

// Expand materializes every full round-trip tour realizing requiredOrder at
// minimum length: each leg between consecutive waypoints is expanded via
// the Distance Oracle's shortest-path family, and the Cartesian product of
// per-leg options is concatenated (dropping the duplicated waypoint at each
// seam). Returns nil if any leg is unreachable. An empty requiredOrder
// returns the single-system trivial tour [origin].
func Expand(oracle *distance.Oracle, origin graph.SystemId, requiredOrder []graph.SystemId) [][]graph.SystemId {
	if len(requiredOrder) == 0 {
		return [][]graph.SystemId{{origin}}
	}
	waypoints := waypointSequence(origin, requiredOrder)
	legs := make([][][]graph.SystemId, len(waypoints)-1)
	for i := 0; i+1 < len(waypoints); i++ {
		paths := oracle.ShortestPaths(waypoints[i], waypoints[i+1])
		if len(paths) == 0 {
			return nil
		}
		legs[i] = paths
	}
	return cartesianConcat(legs)
}

func waypointSequence(origin graph.SystemId, requiredOrder []graph.SystemId) []graph.SystemId {
	out := make([]graph.SystemId, 0, len(requiredOrder)+2)
	out = append(out, origin)
	out = append(out, requiredOrder...)
	out = append(out, origin)
	return out
}

func cartesianConcat(legs [][][]graph.SystemId) [][]graph.SystemId {
	var result [][]graph.SystemId
	var recurse func(idx int, acc []graph.SystemId)
	recurse = func(idx int, acc []graph.SystemId) {
		if idx == len(legs) {
			full := make([]graph.SystemId, len(acc))
			copy(full, acc)
			result = append(result, full)
			return
		}
		for _, option := range legs[idx] {
			next := option
			if idx > 0 {
				next = option[1:]
			}
			combined := make([]graph.SystemId, 0, len(acc)+len(next))
			combined = append(combined, acc...)
			combined = append(combined, next...)
			recurse(idx+1, combined)
		}
	}
	recurse(0, nil)
	return result
}

// DFSRoundTrip finds a single shortest round trip over sub (the induced
// subgraph of the candidate system set) that starts and ends at origin and
// visits every system in required at least once. The search carries a
// per-node visit counter, starting at zero even for origin's initial
// placement in path, and refuses to step into a node whose visit count
// already equals its degree in sub, since a further visit cannot add new
// reachability; leaving origin uncounted at the start is what lets the
// closing step back into it when origin's induced degree is 1. It accepts
// the first closing path found, then tightens the depth cap to that path's
// length minus one and keeps searching for a shorter sibling; neighbors are
// tried in ascending SystemId order so ties resolve to the lexicographically
// smallest path. maxDepth bounds the initial search; returns nil if no
// closing path exists within it.
func DFSRoundTrip(sub *graph.Graph, origin graph.SystemId, required []graph.SystemId, maxDepth int) []graph.SystemId {
	remaining := make(map[graph.SystemId]struct{}, len(required))
	for _, s := range required {
		if s != origin {
			remaining[s] = struct{}{}
		}
	}
	visitCounts := make(map[graph.SystemId]int)
	path := []graph.SystemId{origin}
	depthCap := maxDepth
	var best []graph.SystemId

	var dfs func(current graph.SystemId, remain map[graph.SystemId]struct{})
	dfs = func(current graph.SystemId, remain map[graph.SystemId]struct{}) {
		hopsSoFar := len(path) - 1
		if hopsSoFar+len(remain) > depthCap {
			return
		}
		if current == origin && len(remain) == 0 && hopsSoFar > 0 {
			if best == nil || hopsSoFar < len(best)-1 {
				best = append([]graph.SystemId{}, path...)
				depthCap = hopsSoFar - 1
			}
			return
		}
		for _, n := range sub.Neighbors(current) {
			if d := sub.Degree(n); d > 0 && visitCounts[n] >= d {
				continue
			}
			nextRemain := remain
			if _, ok := remain[n]; ok {
				nextRemain = make(map[graph.SystemId]struct{}, len(remain)-1)
				for k := range remain {
					if k != n {
						nextRemain[k] = struct{}{}
					}
				}
			}
			visitCounts[n]++
			path = append(path, n)
			dfs(n, nextRemain)
			path = path[:len(path)-1]
			visitCounts[n]--
		}
	}
	dfs(origin, remaining)
	return best
}
