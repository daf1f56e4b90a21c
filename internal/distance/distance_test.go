package distance

import (
	"testing"

	"routesweep/internal/graph"
)

func lineGraph(t *testing.T, n int) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder()
	for i := 1; i < n; i++ {
		b.AddEdge(graph.SystemId(i), graph.SystemId(i+1))
	}
	g, err := b.Build(1)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return g
}

func TestDistance_Symmetry(t *testing.T) {
	g := lineGraph(t, 4)
	o := New(g, 12)
	ab, okAB := o.Distance(1, 4)
	ba, okBA := o.Distance(4, 1)
	if !okAB || !okBA || ab != ba {
		t.Errorf("Distance not symmetric: (1,4)=%d,%v (4,1)=%d,%v", ab, okAB, ba, okBA)
	}
}

func TestDistance_TriangleInequality(t *testing.T) {
	g := lineGraph(t, 5)
	o := New(g, 12)
	ac, _ := o.Distance(1, 5)
	ab, _ := o.Distance(1, 3)
	bc, _ := o.Distance(3, 5)
	if ac > ab+bc {
		t.Errorf("triangle inequality violated: ac=%d ab+bc=%d", ac, ab+bc)
	}
}

func TestDistance_BeyondRadiusIsUnknown(t *testing.T) {
	g := lineGraph(t, 20)
	o := New(g, 10)
	_, ok := o.Distance(1, 15)
	if ok {
		t.Errorf("expected system 15 to be beyond the radius from system 1")
	}
}

func TestShortestPaths_AllTiedMinimumLength(t *testing.T) {
	// Diamond: 1-2-4 and 1-3-4, both length 2.
	b := graph.NewBuilder()
	b.AddEdge(1, 2)
	b.AddEdge(1, 3)
	b.AddEdge(2, 4)
	b.AddEdge(3, 4)
	g, err := b.Build(1)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	o := New(g, 12)
	paths := o.ShortestPaths(1, 4)
	if len(paths) != 2 {
		t.Fatalf("ShortestPaths(1,4) = %v, want 2 tied paths", paths)
	}
	for _, p := range paths {
		if p[0] != 1 || p[len(p)-1] != 4 {
			t.Errorf("path %v does not start at 1 and end at 4", p)
		}
		for i := 0; i+1 < len(p); i++ {
			if !g.Adjacent(p[i], p[i+1]) {
				t.Errorf("path %v has non-adjacent consecutive pair at %d", p, i)
			}
		}
	}
}

func TestShortestPaths_Unreachable(t *testing.T) {
	g := lineGraph(t, 20)
	o := New(g, 10)
	if paths := o.ShortestPaths(1, 15); paths != nil {
		t.Errorf("expected nil for unreachable target, got %v", paths)
	}
}
