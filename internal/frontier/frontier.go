// Package frontier holds the best-by-value Solution observed at each
// distinct jump count, the anytime search loop's running result set.
package frontier

import (
	"routesweep/internal/graph"
	"routesweep/internal/site"
)

// Solution is a complete, self-consistent tour-plus-load pairing.
type Solution struct {
	Tour         []graph.SystemId
	Load         []site.Site
	TotalValue   float64
	TotalVolume  float64
	JumpCount    int
	ValuePerJump float64
}

// NewSolution derives the value/jump_count/value_per_jump fields from a
// tour and a load. jump_count is (len(tour)-1) + len(load) by definition.
func NewSolution(t []graph.SystemId, load []site.Site) Solution {
	totalValue, totalVolume := 0.0, 0.0
	for _, s := range load {
		totalValue += s.Value
		totalVolume += s.Volume
	}
	jumpCount := (len(t) - 1) + len(load)
	valuePerJump := 0.0
	if jumpCount > 0 {
		valuePerJump = totalValue / float64(jumpCount)
	}
	return Solution{
		Tour:         t,
		Load:         load,
		TotalValue:   totalValue,
		TotalVolume:  totalVolume,
		JumpCount:    jumpCount,
		ValuePerJump: valuePerJump,
	}
}

// Frontier maps jump_count to the best Solution seen at that jump count.
type Frontier struct {
	byJumpCount map[int]Solution
}

// New returns an empty Frontier.
func New() *Frontier {
	return &Frontier{byJumpCount: make(map[int]Solution)}
}

// Update writes solution into the slot for its jump count iff the slot is
// empty or the incumbent's total value is strictly lower. Returns true if
// the write happened.
func (f *Frontier) Update(solution Solution) bool {
	incumbent, ok := f.byJumpCount[solution.JumpCount]
	if ok && incumbent.TotalValue >= solution.TotalValue {
		return false
	}
	f.byJumpCount[solution.JumpCount] = solution
	return true
}

// All returns every Solution currently on the frontier, in no particular
// order.
func (f *Frontier) All() []Solution {
	out := make([]Solution, 0, len(f.byJumpCount))
	for _, s := range f.byJumpCount {
		out = append(out, s)
	}
	return out
}

// At returns the Solution recorded at the given jump count, if any.
func (f *Frontier) At(jumpCount int) (Solution, bool) {
	s, ok := f.byJumpCount[jumpCount]
	return s, ok
}

// Len returns the number of distinct jump counts on the frontier.
func (f *Frontier) Len() int {
	return len(f.byJumpCount)
}

// BestByValue returns the Solution with the highest total value, and false
// if the frontier is empty.
func (f *Frontier) BestByValue() (Solution, bool) {
	var best Solution
	found := false
	for _, s := range f.byJumpCount {
		if !found || s.TotalValue > best.TotalValue {
			best = s
			found = true
		}
	}
	return best, found
}

// BestByValuePerJump returns the Solution with the highest value per jump,
// and false if the frontier is empty.
func (f *Frontier) BestByValuePerJump() (Solution, bool) {
	var best Solution
	found := false
	for _, s := range f.byJumpCount {
		if !found || s.ValuePerJump > best.ValuePerJump {
			best = s
			found = true
		}
	}
	return best, found
}
