package priority

import (
	"testing"

	"routesweep/internal/graph"
)

func TestCompute_PropagationDecaysByHalfPerHop(t *testing.T) {
	// S6: 1-2-3; sites at 3 only (v=1000); max_distance=5, decay=0.5.
	b := graph.NewBuilder()
	b.AddEdge(1, 2)
	b.AddEdge(2, 3)
	g, err := b.Build(1)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	bestValue := func(s graph.SystemId) float64 {
		if s == 3 {
			return 1000
		}
		return 0
	}
	p := Compute(g, 1, bestValue, 5, 0.5)
	if p[3] < 1000 {
		t.Errorf("priority[3] = %v, want >= 1000", p[3])
	}
	if p[2] < 500 {
		t.Errorf("priority[2] = %v, want >= 500", p[2])
	}
	if p[1] < 250 {
		t.Errorf("priority[1] = %v, want >= 250", p[1])
	}
}

func TestCompute_SeedingStopsPastMaxDistance(t *testing.T) {
	b := graph.NewBuilder()
	for i := 1; i < 10; i++ {
		b.AddEdge(graph.SystemId(i), graph.SystemId(i+1))
	}
	g, err := b.Build(1)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	p := Compute(g, 1, func(graph.SystemId) float64 { return 0 }, 2, 0.5)
	if _, ok := p[5]; ok {
		t.Errorf("system 5 should not be seeded beyond max_distance=2")
	}
	if _, ok := p[3]; !ok {
		t.Errorf("system 3 should be seeded within max_distance=2")
	}
}
