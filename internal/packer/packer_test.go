package packer

import (
	"testing"

	"routesweep/internal/site"
)

func TestPack_VolumeCapEnforcesSelection(t *testing.T) {
	// S3: 1-2, sites at 2: A(v=100,vol=60), B(v=90,vol=50), C(v=10,vol=5); budget=60.
	sites := []site.Site{
		{ID: 1, System: 2, Value: 100, Volume: 60},
		{ID: 2, System: 2, Value: 90, Volume: 50},
		{ID: 3, System: 2, Value: 10, Volume: 5},
	}
	got := Pack(sites, 60)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("Pack() = %v, want only site A", got)
	}
	if TotalValue(got) != 100 {
		t.Errorf("TotalValue() = %v, want 100", TotalValue(got))
	}
}

func TestPack_StopsAtNonPositiveValue(t *testing.T) {
	sites := []site.Site{
		{ID: 1, System: 1, Value: 50, Volume: 1},
		{ID: 2, System: 1, Value: 0, Volume: 1},
		{ID: 3, System: 1, Value: 10, Volume: 1},
	}
	// Sorted by value the order is 50, 10, 0: both positive-value sites are
	// admitted and the walk stops at the zero-valued one.
	got := Pack(sites, 100)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("Pack() = %v, want sites 1 and 3 only", got)
	}
}

func TestPack_ZeroVolumeAdmittedWhileBudgetUnmet(t *testing.T) {
	sites := []site.Site{
		{ID: 1, System: 1, Value: 10, Volume: 0},
		{ID: 2, System: 1, Value: 5, Volume: 0},
	}
	got := Pack(sites, 10)
	if len(got) != 2 {
		t.Errorf("Pack() = %v, want both zero-volume sites admitted", got)
	}
}

func TestPack_Deterministic(t *testing.T) {
	sites := []site.Site{
		{ID: 1, System: 1, Value: 10, Volume: 1},
		{ID: 2, System: 1, Value: 10, Volume: 1},
	}
	a := Pack(sites, 1)
	b := Pack(sites, 1)
	if len(a) != 1 || len(b) != 1 || a[0].ID != b[0].ID {
		t.Errorf("Pack() not deterministic: %v vs %v", a, b)
	}
}
