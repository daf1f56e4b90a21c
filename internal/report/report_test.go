package report

import (
	"fmt"
	"strings"
	"testing"

	"routesweep/internal/frontier"
	"routesweep/internal/graph"
	"routesweep/internal/site"
)

func names(t *testing.T) (SystemName, SiteName) {
	systems := map[graph.SystemId]string{1: "Alpha", 2: "Bravo", 3: "Charlie", 4: "Delta"}
	sites := map[site.SiteId]string{10: "Outpost"}
	return func(s graph.SystemId) string { return systems[s] },
		func(id site.SiteId) string { return sites[id] }
}

// TestPathLines_PickupEmittedOnLastVisit uses a tour that visits system 2
// three times on an asymmetric branch pattern ([1,2,3,2,4,2,1], whose
// reverse is a different sequence of branch visits): the pickup must land
// right after the LAST line for system 2 in the printed (reversed) travel
// order, not after the first.
func TestPathLines_PickupEmittedOnLastVisit(t *testing.T) {
	sol := frontier.NewSolution(
		[]graph.SystemId{1, 2, 3, 2, 4, 2, 1},
		[]site.Site{{ID: 10, System: 2, Value: 100, Volume: 10}},
	)
	systemName, siteName := names(t)
	lines := PathLines(sol, systemName, siteName)

	want := []string{"Alpha", "Bravo", "Delta", "Bravo", "Charlie", "Bravo", "   Outpost  value=100  volume=10", "Alpha"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q\nfull: %v", i, lines[i], want[i], lines)
		}
	}
}

func TestPathLines_ReversedLoopStartsAtOrigin(t *testing.T) {
	sol := frontier.NewSolution([]graph.SystemId{1, 2, 1}, nil)
	systemName, siteName := names(t)
	lines := PathLines(sol, systemName, siteName)
	want := []string{"Alpha", "Bravo", "Alpha"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSummary_SortedByJumpCount(t *testing.T) {
	fr := frontier.New()
	fr.Update(frontier.NewSolution([]graph.SystemId{1, 2, 3, 2, 1}, []site.Site{{ID: 1, Value: 100, Volume: 1}}))
	fr.Update(frontier.NewSolution([]graph.SystemId{1, 2, 1}, []site.Site{{ID: 2, Value: 10, Volume: 1}}))

	lines := Summary(fr)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], fmt.Sprintf("jumps=%d", 3)) {
		t.Errorf("lines[0] = %q, want jumps=3 first", lines[0])
	}
	if !strings.Contains(lines[1], fmt.Sprintf("jumps=%d", 5)) {
		t.Errorf("lines[1] = %q, want jumps=5 second", lines[1])
	}
}
