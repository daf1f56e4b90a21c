// Package search implements the outer anytime loop: two interchangeable
// strategies for enumerating candidate required-system sets and turning
// each into a scored Solution on the Frontier.
package search

import (
	"context"

	"routesweep/internal/frontier"
)

// Engine is the shared interface both search strategies satisfy. Run drives
// candidate enumeration until its own stopping condition (a deadline on ctx
// for the powerset engine, a solutions cap for the adjacency engine) fires,
// then returns whatever Frontier has accumulated. Run never returns an
// error: NoRouteFound on an individual candidate is swallowed and
// enumeration continues, and a timed-out or exhausted search is not itself
// an error condition.
type Engine interface {
	Run(ctx context.Context) *frontier.Frontier
}
