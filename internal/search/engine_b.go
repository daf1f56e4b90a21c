package search

import (
	"context"
	"fmt"
	"math"

	"routesweep/internal/distance"
	"routesweep/internal/frontier"
	"routesweep/internal/graph"
	"routesweep/internal/logger"
	"routesweep/internal/packer"
	"routesweep/internal/site"
	"routesweep/internal/tour"
)

// PowersetEngine is Engine B: enumerates systems in descending order of
// local site value, and for each one tries extending every subset of the
// systems already seen by that one new system, resolving the resulting
// required set via §4.4's waypoint-order resolver and permutation search.
type PowersetEngine struct {
	oracle       *distance.Oracle
	idx          *site.Index
	origin       graph.SystemId
	volumeBudget float64
}

// NewPowersetEngine builds Engine B over the given collaborators.
func NewPowersetEngine(oracle *distance.Oracle, idx *site.Index, origin graph.SystemId, volumeBudget float64) *PowersetEngine {
	return &PowersetEngine{oracle: oracle, idx: idx, origin: origin, volumeBudget: volumeBudget}
}

// Run implements Engine. The deadline on ctx is polled between candidate
// systems, per §4.7/§5 — never inside the powerset/permutation search for a
// single system, which runs to completion once started.
func (e *PowersetEngine) Run(ctx context.Context) *frontier.Frontier {
	fr := frontier.New()
	knownSystemSets := make(map[string]int)
	noRouteSkips := 0

	systemsOrderedByValue := e.idx.Systems()
	var previousSystems []graph.SystemId

	for _, n := range systemsOrderedByValue {
		if err := ctx.Err(); err != nil {
			return fr
		}

		for _, subset := range powerset(previousSystems) {
			required := append(append([]graph.SystemId{}, subset...), n)
			tied := tiedMinimumPermutations(e.oracle, e.origin, required)
			if len(tied) == 0 {
				noRouteSkips++ // NoRouteFound: every permutation unreachable, swallowed.
				continue
			}
			for _, perm := range tied {
				tours := tour.Expand(e.oracle, e.origin, perm)
				if tours == nil {
					noRouteSkips++ // NoRouteFound: swallowed, enumeration continues.
					continue
				}
				for _, tourPath := range tours {
					visited := uniqueSystems(tourPath)
					key := canonicalKey(visited)
					length := len(tourPath) - 1
					if prevLen, seen := knownSystemSets[key]; seen && prevLen <= length {
						continue
					}
					knownSystemSets[key] = length

					sites := e.idx.SitesIn(visited)
					load := packer.Pack(sites, e.volumeBudget)
					fr.Update(frontier.NewSolution(tourPath, load))
				}
			}
		}

		previousSystems = append(previousSystems, n)
	}
	if noRouteSkips > 0 {
		logger.Info("ENGINE_B", fmt.Sprintf("swallowed %d unreachable required-sets (NoRouteFound)", noRouteSkips))
	}
	return fr
}

// powerset returns every subset of systems, including the empty subset,
// in the order itertools.combinations would enumerate them (by size, then
// by index order within each size).
func powerset(systems []graph.SystemId) [][]graph.SystemId {
	n := len(systems)
	result := make([][]graph.SystemId, 0, 1<<uint(n))
	result = append(result, nil)
	for size := 1; size <= n; size++ {
		combos := combinations(systems, size)
		result = append(result, combos...)
	}
	return result
}

func combinations(systems []graph.SystemId, size int) [][]graph.SystemId {
	n := len(systems)
	if size > n {
		return nil
	}
	var result [][]graph.SystemId
	indices := make([]int, size)
	for i := range indices {
		indices[i] = i
	}
	for {
		combo := make([]graph.SystemId, size)
		for i, idx := range indices {
			combo[i] = systems[idx]
		}
		result = append(result, combo)

		i := size - 1
		for i >= 0 && indices[i] == i+n-size {
			i--
		}
		if i < 0 {
			break
		}
		indices[i]++
		for j := i + 1; j < size; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
	return result
}

// permutations returns every ordering of xs.
func permutations(xs []graph.SystemId) [][]graph.SystemId {
	if len(xs) == 0 {
		return [][]graph.SystemId{{}}
	}
	var result [][]graph.SystemId
	for i := range xs {
		rest := make([]graph.SystemId, 0, len(xs)-1)
		rest = append(rest, xs[:i]...)
		rest = append(rest, xs[i+1:]...)
		for _, sub := range permutations(rest) {
			perm := make([]graph.SystemId, 0, len(xs))
			perm = append(perm, xs[i])
			perm = append(perm, sub...)
			result = append(result, perm)
		}
	}
	return result
}

// tiedMinimumPermutations tries every permutation of required, summing
// pairwise segment distances with early abandonment once the running total
// exceeds the best found so far, and returns every permutation tied for
// the minimum total length.
func tiedMinimumPermutations(oracle *distance.Oracle, origin graph.SystemId, required []graph.SystemId) [][]graph.SystemId {
	best := math.MaxInt32
	var tied [][]graph.SystemId
	for _, perm := range permutations(required) {
		length, ok := segmentLengthBounded(oracle, origin, perm, best)
		if !ok {
			continue
		}
		if length < best {
			best = length
			tied = [][]graph.SystemId{perm}
		} else if length == best {
			tied = append(tied, perm)
		}
	}
	return tied
}

func segmentLengthBounded(oracle *distance.Oracle, origin graph.SystemId, order []graph.SystemId, bound int) (int, bool) {
	waypoints := make([]graph.SystemId, 0, len(order)+2)
	waypoints = append(waypoints, origin)
	waypoints = append(waypoints, order...)
	waypoints = append(waypoints, origin)

	total := 0
	for i := 0; i+1 < len(waypoints); i++ {
		d, ok := oracle.Distance(waypoints[i], waypoints[i+1])
		if !ok {
			return 0, false
		}
		total += d
		if total > bound {
			return 0, false
		}
	}
	return total, true
}
