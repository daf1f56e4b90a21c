// Package site holds the pickup-location data model: immutable Site
// snapshots grouped by the system that contains them.
package site

import (
	"fmt"
	"sort"

	"routesweep/internal/graph"
)

// SiteId is the opaque identity of a pickup location.
type SiteId int64

// Site is an immutable snapshot of a pickup location.
type Site struct {
	ID     SiteId
	System graph.SystemId
	Value  float64
	Volume float64
}

// Index is an immutable mapping from system to the sites it contains.
type Index struct {
	bySystem map[graph.SystemId][]Site
}

// InvalidInventoryError reports a construction-time inventory defect: a
// site referencing an unknown system, or the origin site appearing in the
// feed it should have been excluded from.
type InvalidInventoryError struct {
	Reason string
}

func (e *InvalidInventoryError) Error() string {
	return fmt.Sprintf("invalid inventory: %s", e.Reason)
}

// NewIndex validates sites against g and builds an Index. startingSiteID,
// if present among sites, is rejected: the origin never carries a pickup.
func NewIndex(g *graph.Graph, sites []Site, startingSiteID SiteId) (*Index, error) {
	idx := &Index{bySystem: make(map[graph.SystemId][]Site)}
	for _, s := range sites {
		if s.ID == startingSiteID {
			return nil, &InvalidInventoryError{Reason: fmt.Sprintf("starting site %d must not appear in the inventory", startingSiteID)}
		}
		if !g.Has(s.System) {
			return nil, &InvalidInventoryError{Reason: fmt.Sprintf("site %d references unknown system %d", s.ID, s.System)}
		}
		idx.bySystem[s.System] = append(idx.bySystem[s.System], s)
	}
	for sys := range idx.bySystem {
		list := idx.bySystem[sys]
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		idx.bySystem[sys] = list
	}
	return idx, nil
}

// At returns the sites at system s, in ascending SiteId order. Nil if none.
func (idx *Index) At(s graph.SystemId) []Site {
	return idx.bySystem[s]
}

// BestValue returns the highest site value at system s, or 0 if the system
// has no sites.
func (idx *Index) BestValue(s graph.SystemId) float64 {
	best := 0.0
	for _, site := range idx.bySystem[s] {
		if site.Value > best {
			best = site.Value
		}
	}
	return best
}

// Systems returns every system that has at least one site, sorted by
// descending best local site value (ties broken by ascending SystemId for
// determinism). This is the iteration order Engine B's powerset enumeration
// consumes.
func (idx *Index) Systems() []graph.SystemId {
	out := make([]graph.SystemId, 0, len(idx.bySystem))
	for s := range idx.bySystem {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		vi, vj := idx.BestValue(out[i]), idx.BestValue(out[j])
		if vi != vj {
			return vi > vj
		}
		return out[i] < out[j]
	})
	return out
}

// SitesIn returns every site contained in any of the given systems, in no
// particular order; callers that need a stable order (e.g. the Load Packer)
// sort it themselves.
func (idx *Index) SitesIn(systems []graph.SystemId) []Site {
	var out []Site
	for _, s := range systems {
		out = append(out, idx.bySystem[s]...)
	}
	return out
}
