// Package report renders a Solution as a human-readable line sequence and
// summarizes a Frontier for console display.
package report

import (
	"fmt"
	"sort"

	"routesweep/internal/frontier"
	"routesweep/internal/graph"
	"routesweep/internal/site"
)

// SystemName resolves a system id to a display name.
type SystemName func(graph.SystemId) string

// SiteName resolves a site id to a display name.
type SiteName func(site.SiteId) string

// PathLines renders a Solution's tour as a reversed sequence of lines
// interleaving system names and site pickups: a pickup is emitted just
// before the system line on the way out, so that after reversal it reads
// as "picked up on the last visit" to that system — the loop direction is
// otherwise arbitrary since the tour is a round trip.
func PathLines(sol frontier.Solution, systemName SystemName, siteName SiteName) []string {
	remaining := make([]site.Site, len(sol.Load))
	copy(remaining, sol.Load)

	var forward []string
	for _, sys := range sol.Tour {
		var here []site.Site
		var rest []site.Site
		for _, s := range remaining {
			if s.System == sys {
				here = append(here, s)
			} else {
				rest = append(rest, s)
			}
		}
		remaining = rest

		for _, s := range here {
			forward = append(forward, fmt.Sprintf("   %s  value=%g  volume=%g", siteName(s.ID), s.Value, s.Volume))
		}
		forward = append(forward, systemName(sys))
	}

	lines := make([]string, len(forward))
	for i, line := range forward {
		lines[len(forward)-1-i] = line
	}
	return lines
}

// Summary renders one line per Solution in a Frontier, sorted by ascending
// jump count.
func Summary(fr *frontier.Frontier) []string {
	solutions := fr.All()
	sort.Slice(solutions, func(i, j int) bool { return solutions[i].JumpCount < solutions[j].JumpCount })
	lines := make([]string, len(solutions))
	for i, sol := range solutions {
		lines[i] = fmt.Sprintf("#systems=%d jumps=%d value=%g value/jump=%g",
			len(uniqueCount(sol)), sol.JumpCount, sol.TotalValue, sol.ValuePerJump)
	}
	return lines
}

func uniqueCount(sol frontier.Solution) []graph.SystemId {
	seen := make(map[graph.SystemId]struct{}, len(sol.Tour))
	var out []graph.SystemId
	for _, s := range sol.Tour {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
