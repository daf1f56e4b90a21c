// Package config holds application settings for a planning run.
package config

// Config holds the tunables a planning run needs: the search engine to
// use, the budgets handed to the core, and where to find the static data
// store and the inventory client.
type Config struct {
	StartingSystemID  int64   `json:"starting_system_id"`
	StartingSiteID    int64   `json:"starting_site_id"`
	VolumeBudget      float64 `json:"volume_budget"`
	TimeBudgetSeconds float64 `json:"time_budget_seconds"`

	MaxSegmentLength    int     `json:"max_segment_length"`
	MaxPriorityDistance int     `json:"max_priority_distance"`
	PriorityDecay       float64 `json:"priority_decay"`
	SolutionsCap        int     `json:"solutions_cap"`
	Engine              string  `json:"engine"` // "a" (adjacency) or "b" (powerset)

	StorePath           string  `json:"store_path"`
	HistoryPath         string  `json:"history_path"`
	InventoryURL        string  `json:"inventory_url"`
	InventoryToken      string  `json:"inventory_token"`
	MaxSiteVolume       float64 `json:"max_site_volume"`
	ExcludedCategoryIDs []int32 `json:"excluded_category_ids"`

	RecordHistory bool `json:"record_history"`
}

// Default returns a Config with sensible defaults, matching the optional
// budget defaults the core itself falls back to when left at zero.
func Default() *Config {
	return &Config{
		TimeBudgetSeconds:   5,
		MaxSegmentLength:    12,
		MaxPriorityDistance: 5,
		PriorityDecay:       0.5,
		SolutionsCap:        500000,
		Engine:              "a",
		StorePath:           "routesweep.db",
		HistoryPath:         "routesweep_history.db",
		MaxSiteVolume:       3000,
		RecordHistory:       true,
	}
}
