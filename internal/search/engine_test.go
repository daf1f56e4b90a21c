package search

import (
	"context"
	"testing"

	"routesweep/internal/distance"
	"routesweep/internal/graph"
	"routesweep/internal/site"
)

func straightLineGraph(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder()
	b.AddEdge(1, 2)
	b.AddEdge(2, 3)
	b.AddEdge(3, 4)
	g, err := b.Build(1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func starGraph(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder()
	b.AddEdge(1, 2)
	b.AddEdge(1, 3)
	b.AddEdge(1, 4)
	g, err := b.Build(1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func triangleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder()
	b.AddEdge(1, 2)
	b.AddEdge(2, 3)
	b.AddEdge(3, 1)
	g, err := b.Build(1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

// TestAdjacencyEngine_S1 exercises the straight-line single-pickup scenario.
func TestAdjacencyEngine_S1(t *testing.T) {
	g := straightLineGraph(t)
	oracle := distance.New(g, 12)
	idx, err := site.NewIndex(g, []site.Site{{ID: 10, System: 3, Value: 100, Volume: 10}}, 999)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	e := NewAdjacencyEngine(g, oracle, idx, 1, 50, 0, 5, 12, 0.5)
	fr := e.Run(context.Background())

	sol, ok := fr.BestByValue()
	if !ok {
		t.Fatalf("expected a solution in frontier")
	}
	if sol.TotalValue != 100 || sol.JumpCount != 5 || sol.ValuePerJump != 20 {
		t.Errorf("got %+v, want total_value=100 jump_count=5 value_per_jump=20", sol)
	}
	wantTour := []graph.SystemId{1, 2, 3, 2, 1}
	if !sameTour(sol.Tour, wantTour) {
		t.Errorf("Tour = %v, want %v", sol.Tour, wantTour)
	}
}

// TestAdjacencyEngine_S2 exercises the star-graph branch choice.
func TestAdjacencyEngine_S2(t *testing.T) {
	g := starGraph(t)
	oracle := distance.New(g, 12)
	sites := []site.Site{
		{ID: 20, System: 2, Value: 10, Volume: 5},
		{ID: 30, System: 3, Value: 100, Volume: 5},
		{ID: 40, System: 4, Value: 20, Volume: 5},
	}
	idx, err := site.NewIndex(g, sites, 999)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	e := NewAdjacencyEngine(g, oracle, idx, 1, 100, 0, 5, 12, 0.5)
	fr := e.Run(context.Background())

	best, ok := fr.BestByValuePerJump()
	if !ok {
		t.Fatalf("expected a solution in frontier")
	}
	if best.JumpCount != 3 || best.TotalValue != 100 {
		t.Errorf("got %+v, want jump_count=3 total_value=100", best)
	}
	wantTour := []graph.SystemId{1, 3, 1}
	if !sameTour(best.Tour, wantTour) {
		t.Errorf("Tour = %v, want %v", best.Tour, wantTour)
	}
}

// TestAdjacencyEngine_S4 exercises the two-pickup triangle scenario.
func TestAdjacencyEngine_S4(t *testing.T) {
	g := triangleGraph(t)
	oracle := distance.New(g, 12)
	sites := []site.Site{
		{ID: 1, System: 2, Value: 50, Volume: 10},
		{ID: 2, System: 3, Value: 50, Volume: 10},
	}
	idx, err := site.NewIndex(g, sites, 999)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	e := NewAdjacencyEngine(g, oracle, idx, 1, 100, 0, 5, 12, 0.5)
	fr := e.Run(context.Background())

	best, ok := fr.BestByValue()
	if !ok {
		t.Fatalf("expected a solution in frontier")
	}
	if best.TotalValue != 100 || best.JumpCount != 5 || best.ValuePerJump != 20 {
		t.Errorf("got %+v, want total_value=100 jump_count=5 value_per_jump=20", best)
	}
	if len(best.Tour) != 4 || best.Tour[0] != 1 || best.Tour[3] != 1 {
		t.Errorf("Tour = %v, want a 4-stop round trip through 1", best.Tour)
	}
}

// TestAdjacencyEngine_S5 exercises segment-radius pruning: the sole pickup
// is unreachable within max_segment_length, so it never appears on the
// frontier.
func TestAdjacencyEngine_S5(t *testing.T) {
	b := graph.NewBuilder()
	for i := graph.SystemId(1); i < 20; i++ {
		b.AddEdge(i, i+1)
	}
	g, err := b.Build(1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	oracle := distance.New(g, 10)
	idx, err := site.NewIndex(g, []site.Site{{ID: 1, System: 15, Value: 1000, Volume: 1}}, 999)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	e := NewAdjacencyEngine(g, oracle, idx, 1, 10, 0, 5, 10, 0.5)
	fr := e.Run(context.Background())

	for _, sol := range fr.All() {
		if sol.TotalValue != 0 {
			t.Errorf("expected no solution to carry value, got %+v", sol)
		}
	}
}

// TestPowersetEngine_S1 exercises the straight-line single-pickup scenario
// against Engine B.
func TestPowersetEngine_S1(t *testing.T) {
	g := straightLineGraph(t)
	oracle := distance.New(g, 12)
	idx, err := site.NewIndex(g, []site.Site{{ID: 10, System: 3, Value: 100, Volume: 10}}, 999)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	e := NewPowersetEngine(oracle, idx, 1, 50)
	fr := e.Run(context.Background())

	sol, ok := fr.BestByValue()
	if !ok {
		t.Fatalf("expected a solution in frontier")
	}
	if sol.TotalValue != 100 || sol.JumpCount != 5 || sol.ValuePerJump != 20 {
		t.Errorf("got %+v, want total_value=100 jump_count=5 value_per_jump=20", sol)
	}
}

// TestPowersetEngine_S4 exercises the two-pickup triangle scenario against
// Engine B.
func TestPowersetEngine_S4(t *testing.T) {
	g := triangleGraph(t)
	oracle := distance.New(g, 12)
	sites := []site.Site{
		{ID: 1, System: 2, Value: 50, Volume: 10},
		{ID: 2, System: 3, Value: 50, Volume: 10},
	}
	idx, err := site.NewIndex(g, sites, 999)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	e := NewPowersetEngine(oracle, idx, 1, 100)
	fr := e.Run(context.Background())

	best, ok := fr.BestByValue()
	if !ok {
		t.Fatalf("expected a solution in frontier")
	}
	if best.TotalValue != 100 || best.JumpCount != 5 || best.ValuePerJump != 20 {
		t.Errorf("got %+v, want total_value=100 jump_count=5 value_per_jump=20", best)
	}
}

// TestPowersetEngine_RespectsCancelledContext verifies the deadline is
// honored between candidate systems rather than ignored outright.
func TestPowersetEngine_RespectsCancelledContext(t *testing.T) {
	g := straightLineGraph(t)
	oracle := distance.New(g, 12)
	idx, err := site.NewIndex(g, []site.Site{{ID: 10, System: 3, Value: 100, Volume: 10}}, 999)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewPowersetEngine(oracle, idx, 1, 50)
	fr := e.Run(ctx)
	if fr.Len() != 0 {
		t.Errorf("expected empty frontier on pre-cancelled context, got %d entries", fr.Len())
	}
}

func sameTour(got, want []graph.SystemId) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
