// Package priority computes the scalar desirability the adjacency-driven
// search engine uses to order its candidate queue: local site value spread
// outward over the graph with exponential decay.
package priority

import "routesweep/internal/graph"

// DefaultMaxDistance is the BFS seeding radius from the origin.
const DefaultMaxDistance = 5

// DefaultDecay is the per-hop falloff applied during relaxation.
const DefaultDecay = 0.5

// BestValue returns the highest site value present at system s, or 0.
type BestValue func(s graph.SystemId) float64

// Compute seeds priority via BFS from origin out to maxDistance hops,
// pairing each discovered system with the best local site value found
// there, then relaxes until no seeded system's priority times decay exceeds
// the priority of a seeded neighbor. The relaxation always converges because
// priorities are bounded above and only ever increase.
func Compute(g *graph.Graph, origin graph.SystemId, bestValue BestValue, maxDistance int, decay float64) map[graph.SystemId]float64 {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	if decay <= 0 {
		decay = DefaultDecay
	}

	priority := make(map[graph.SystemId]float64)
	seededDistance := make(map[graph.SystemId]int)
	priority[origin] = bestValue(origin)
	seededDistance[origin] = 0

	queue := []graph.SystemId{origin}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		d := seededDistance[current]
		if d >= maxDistance {
			continue
		}
		for _, n := range g.Neighbors(current) {
			if _, seen := seededDistance[n]; seen {
				continue
			}
			seededDistance[n] = d + 1
			priority[n] = bestValue(n)
			queue = append(queue, n)
		}
	}

	dirty := make([]graph.SystemId, 0, len(priority))
	for s := range priority {
		dirty = append(dirty, s)
	}
	inQueue := make(map[graph.SystemId]bool, len(priority))
	for _, s := range dirty {
		inQueue[s] = true
	}
	for len(dirty) > 0 {
		s := dirty[0]
		dirty = dirty[1:]
		inQueue[s] = false
		for _, n := range g.Neighbors(s) {
			if _, known := priority[n]; !known {
				continue
			}
			candidate := priority[s] * decay
			if candidate > priority[n] {
				priority[n] = candidate
				if !inQueue[n] {
					dirty = append(dirty, n)
					inQueue[n] = true
				}
			}
		}
	}
	return priority
}
