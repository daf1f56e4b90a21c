package search

import (
	"container/heap"
	"context"
	"fmt"

	"routesweep/internal/distance"
	"routesweep/internal/frontier"
	"routesweep/internal/graph"
	"routesweep/internal/logger"
	"routesweep/internal/packer"
	"routesweep/internal/priority"
	"routesweep/internal/site"
	"routesweep/internal/tour"
)

// DefaultSolutionsCap bounds the size of AdjacencyEngine's solutions map,
// its sole stopping condition besides exhausting the candidate queue.
const DefaultSolutionsCap = 500000

// AdjacencyEngine is Engine A: an adjacency-driven expansion that walks the
// graph outward from the origin in priority order, growing known system
// sets by one system at a time and resolving each via the depth-bounded DFS
// tour (package tour, §4.5).
type AdjacencyEngine struct {
	g            *graph.Graph
	oracle       *distance.Oracle
	idx          *site.Index
	origin       graph.SystemId
	volumeBudget float64

	solutionsCap        int
	maxPriorityDistance int
	priorityDecay       float64
	maxSegmentLength    int
}

// NewAdjacencyEngine builds Engine A over the given collaborators. A
// solutionsCap <= 0 uses DefaultSolutionsCap.
func NewAdjacencyEngine(g *graph.Graph, oracle *distance.Oracle, idx *site.Index, origin graph.SystemId, volumeBudget float64, solutionsCap, maxPriorityDistance, maxSegmentLength int, priorityDecay float64) *AdjacencyEngine {
	if solutionsCap <= 0 {
		solutionsCap = DefaultSolutionsCap
	}
	return &AdjacencyEngine{
		g:                   g,
		oracle:              oracle,
		idx:                 idx,
		origin:              origin,
		volumeBudget:        volumeBudget,
		solutionsCap:        solutionsCap,
		maxPriorityDistance: maxPriorityDistance,
		priorityDecay:       priorityDecay,
		maxSegmentLength:    maxSegmentLength,
	}
}

// heapItem is a candidate system waiting to be expanded, ordered by
// descending priority with insertion order breaking ties — the same
// pqItem/priorityQueue shape used for Dijkstra elsewhere, repurposed from
// distance-ordering to priority-ordering.
type heapItem struct {
	system   graph.SystemId
	priority float64
	order    int
}

type priorityHeap []heapItem

func (h priorityHeap) Len() int { return len(h) }
func (h priorityHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return h[i].order < h[j].order
}
func (h priorityHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *priorityHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *priorityHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type knownSolution struct {
	systems []graph.SystemId
}

// Run implements Engine. ctx is honored only as an early-out if already
// cancelled before the loop starts; the engine's own stopping condition is
// the solutions-map size cap, per §4.7/§5.
func (e *AdjacencyEngine) Run(ctx context.Context) *frontier.Frontier {
	fr := frontier.New()
	if err := ctx.Err(); err != nil {
		return fr
	}

	priorities := priority.Compute(e.g, e.origin, e.idx.BestValue, e.maxPriorityDistance, e.priorityDecay)

	pq := &priorityHeap{}
	heap.Init(pq)
	order := 0
	pushed := map[graph.SystemId]bool{e.origin: true}
	push := func(s graph.SystemId) {
		heap.Push(pq, heapItem{system: s, priority: priorities[s], order: order})
		order++
	}
	push(e.origin)

	solutions := map[string]knownSolution{
		canonicalKey([]graph.SystemId{e.origin}): {systems: []graph.SystemId{e.origin}},
	}

	bestValuePerJump := 0.0
	noRouteSkips := 0

	for pq.Len() > 0 && len(solutions) < e.solutionsCap {
		popped := heap.Pop(pq).(heapItem)
		s := popped.system
		_, sInRadius := e.oracle.Distance(e.origin, s)

		for _, n := range e.g.Neighbors(s) {
			if !pushed[n] {
				pushed[n] = true
				push(n)
			}
		}

		neighbors := e.g.Neighbors(s)
		neighborSet := make(map[graph.SystemId]bool, len(neighbors))
		for _, n := range neighbors {
			neighborSet[n] = true
		}

		existing := make([]knownSolution, 0, len(solutions))
		for _, sol := range solutions {
			existing = append(existing, sol)
		}

		for _, sol := range existing {
			if len(solutions) >= e.solutionsCap {
				break
			}
			if containsSystem(sol.systems, s) {
				continue
			}
			adjacent := false
			for _, sys := range sol.systems {
				if neighborSet[sys] {
					adjacent = true
					break
				}
			}
			if !adjacent {
				continue
			}
			if !sInRadius {
				// NoRouteFound: s lies beyond the segment radius from the
				// origin; the set is swallowed and never recorded.
				noRouteSkips++
				continue
			}

			newSystems := append(append([]graph.SystemId{}, sol.systems...), s)
			newKey := canonicalKey(newSystems)
			if _, exists := solutions[newKey]; exists {
				continue
			}
			solutions[newKey] = knownSolution{systems: newSystems}

			sites := e.idx.SitesIn(newSystems)
			load := packer.Pack(sites, e.volumeBudget)
			totalValue := packer.TotalValue(load)
			optimisticJumps := len(newSystems) + len(load)
			if optimisticJumps == 0 {
				continue
			}
			if totalValue/float64(optimisticJumps) <= bestValuePerJump {
				// Cannot beat the global best even under the most
				// optimistic tour length; skip the expensive DFS.
				continue
			}

			required := make([]graph.SystemId, 0, len(newSystems))
			for _, sys := range newSystems {
				if sys != e.origin {
					required = append(required, sys)
				}
			}
			sub := e.g.Induced(newSystems)
			depthCap := e.maxSegmentLength * len(newSystems)
			tourPath := tour.DFSRoundTrip(sub, e.origin, required, depthCap)
			if tourPath == nil {
				noRouteSkips++ // NoRouteFound: swallowed, enumeration continues.
				continue
			}

			solution := frontier.NewSolution(tourPath, load)
			if solution.ValuePerJump > bestValuePerJump {
				bestValuePerJump = solution.ValuePerJump
			}
			fr.Update(solution)
		}
	}
	if noRouteSkips > 0 {
		logger.Info("ENGINE_A", fmt.Sprintf("swallowed %d unreachable system sets (NoRouteFound)", noRouteSkips))
	}
	return fr
}
