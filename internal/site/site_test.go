package site

import (
	"testing"

	"routesweep/internal/graph"
)

func buildGraph(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder()
	b.AddEdge(1, 2)
	b.AddEdge(2, 3)
	g, err := b.Build(1)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return g
}

func TestNewIndex_RejectsStartingSite(t *testing.T) {
	g := buildGraph(t)
	_, err := NewIndex(g, []Site{{ID: 999, System: 2, Value: 10, Volume: 1}}, 999)
	if err == nil {
		t.Fatalf("expected InvalidInventoryError when starting site appears")
	}
}

func TestNewIndex_RejectsUnknownSystem(t *testing.T) {
	g := buildGraph(t)
	_, err := NewIndex(g, []Site{{ID: 1, System: 99, Value: 10, Volume: 1}}, 999)
	if err == nil {
		t.Fatalf("expected InvalidInventoryError for unknown system")
	}
}

func TestIndex_SystemsOrderedByValueDescending(t *testing.T) {
	g := buildGraph(t)
	idx, err := NewIndex(g, []Site{
		{ID: 1, System: 2, Value: 10, Volume: 1},
		{ID: 2, System: 3, Value: 100, Volume: 1},
	}, 999)
	if err != nil {
		t.Fatalf("NewIndex returned error: %v", err)
	}
	got := idx.Systems()
	if len(got) != 2 || got[0] != 3 || got[1] != 2 {
		t.Errorf("Systems() = %v, want [3 2]", got)
	}
}

func TestIndex_At(t *testing.T) {
	g := buildGraph(t)
	idx, err := NewIndex(g, []Site{{ID: 5, System: 2, Value: 10, Volume: 1}}, 999)
	if err != nil {
		t.Fatalf("NewIndex returned error: %v", err)
	}
	sites := idx.At(2)
	if len(sites) != 1 || sites[0].ID != 5 {
		t.Errorf("At(2) = %v, want one site with ID 5", sites)
	}
	if len(idx.At(3)) != 0 {
		t.Errorf("At(3) should be empty")
	}
}
