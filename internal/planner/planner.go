// Package planner is the top-level orchestrator: it validates the graph and
// inventory, wires up the distance oracle and a search engine, and runs the
// engine under a time budget to produce a Frontier of candidate routes.
package planner

import (
	"context"
	"time"

	"routesweep/internal/distance"
	"routesweep/internal/frontier"
	"routesweep/internal/graph"
	"routesweep/internal/search"
	"routesweep/internal/site"
)

// EngineKind selects which search strategy a Run uses.
type EngineKind string

const (
	EngineAdjacency EngineKind = "a"
	EnginePowerset  EngineKind = "b"
)

// Budgets bundles the tunables a Run needs beyond the graph and inventory
// themselves. Zero values for the optional fields fall back to each
// collaborator's own defaults.
type Budgets struct {
	VolumeBudget        float64
	TimeBudgetSeconds   float64
	MaxSegmentLength    int
	MaxPriorityDistance int
	PriorityDecay       float64
	SolutionsCap        int
	Engine              EngineKind
}

// Planner owns the validated Graph and Inventory Index for one planning
// session and can run either search engine against them.
type Planner struct {
	g   *graph.Graph
	idx *site.Index

	origin  graph.SystemId
	oracle  *distance.Oracle
	budgets Budgets
}

// New validates the inventory against the given graph and constructs a
// Planner. Returns site.InvalidInventoryError on malformed input, fatal at
// construction per the error taxonomy; the graph itself is assumed already
// validated by graph.Builder.Build.
func New(g *graph.Graph, startingSystem graph.SystemId, sites []site.Site, startingSiteID site.SiteId, budgets Budgets) (*Planner, error) {
	idx, err := site.NewIndex(g, sites, startingSiteID)
	if err != nil {
		return nil, err
	}

	maxSegmentLength := budgets.MaxSegmentLength
	if maxSegmentLength <= 0 {
		maxSegmentLength = distance.DefaultMaxSegmentLength
	}
	maxPriorityDistance := budgets.MaxPriorityDistance
	if maxPriorityDistance <= 0 {
		maxPriorityDistance = 5
	}
	priorityDecay := budgets.PriorityDecay
	if priorityDecay <= 0 {
		priorityDecay = 0.5
	}
	budgets.MaxSegmentLength = maxSegmentLength
	budgets.MaxPriorityDistance = maxPriorityDistance
	budgets.PriorityDecay = priorityDecay
	if budgets.Engine == "" {
		budgets.Engine = EngineAdjacency
	}

	return &Planner{
		g:       g,
		idx:     idx,
		origin:  startingSystem,
		oracle:  distance.New(g, maxSegmentLength),
		budgets: budgets,
	}, nil
}

// Run selects the configured engine, runs it under the configured time
// budget, and returns the resulting Frontier. A timed-out or
// solutions-exhausted run is not an error: it returns normally with
// whatever Frontier has accumulated so far.
func (p *Planner) Run(ctx context.Context) *frontier.Frontier {
	var deadline context.Context
	var cancel context.CancelFunc
	if p.budgets.TimeBudgetSeconds > 0 {
		deadline, cancel = context.WithTimeout(ctx, time.Duration(p.budgets.TimeBudgetSeconds*float64(time.Second)))
	} else {
		deadline, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	engine := p.buildEngine()
	return engine.Run(deadline)
}

func (p *Planner) buildEngine() search.Engine {
	switch p.budgets.Engine {
	case EnginePowerset:
		return search.NewPowersetEngine(p.oracle, p.idx, p.origin, p.budgets.VolumeBudget)
	default:
		return search.NewAdjacencyEngine(
			p.g, p.oracle, p.idx, p.origin, p.budgets.VolumeBudget,
			p.budgets.SolutionsCap, p.budgets.MaxPriorityDistance, p.budgets.MaxSegmentLength, p.budgets.PriorityDecay,
		)
	}
}

// Graph exposes the validated graph this planner was built from.
func (p *Planner) Graph() *graph.Graph { return p.g }

// Index exposes the validated inventory index this planner was built from.
func (p *Planner) Index() *site.Index { return p.idx }
