// Package packer implements the greedy load packer: a 0/1-knapsack
// approximation that sorts by descending value and fills the volume budget.
package packer

import (
	"sort"

	"routesweep/internal/site"
)

// Pack returns the highest-value-first subset of sites whose cumulative
// volume stays within volumeBudget. Sites are considered in descending value
// order (stable on ties); packing stops at the first site with non-positive
// value, discarding it and every lower-valued site behind it. A site is
// admitted only if doing so keeps the running volume at or under the
// budget; the walk stops at the first site that would push it over. Ties on
// volume exactly filling the remaining budget are admitted.
func Pack(sites []site.Site, volumeBudget float64) []site.Site {
	sorted := make([]site.Site, len(sites))
	copy(sorted, sites)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	var loaded []site.Site
	cumVolume := 0.0
	for _, s := range sorted {
		if s.Value <= 0 {
			break
		}
		newVolume := cumVolume + s.Volume
		if newVolume > volumeBudget {
			break
		}
		loaded = append(loaded, s)
		cumVolume = newVolume
	}
	return loaded
}

// TotalValue sums the value of a load.
func TotalValue(load []site.Site) float64 {
	total := 0.0
	for _, s := range load {
		total += s.Value
	}
	return total
}

// TotalVolume sums the volume of a load.
func TotalVolume(load []site.Site) float64 {
	total := 0.0
	for _, s := range load {
		total += s.Volume
	}
	return total
}
