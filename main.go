package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"routesweep/internal/config"
	"routesweep/internal/graph"
	"routesweep/internal/history"
	"routesweep/internal/invclient"
	"routesweep/internal/logger"
	"routesweep/internal/planner"
	"routesweep/internal/report"
	"routesweep/internal/site"
	"routesweep/internal/store"
)

var version = "dev"

// loadDotEnv reads a local .env file into the process environment, without
// overriding anything already set. Absent on double-clicked binaries and
// CI, so failures are silent. Checked both in the working directory and
// next to the executable.
func loadDotEnv() {
	candidates := []string{".env"}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), ".env"))
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		for _, line := range splitLines(string(data)) {
			key, value, ok := parseEnvLine(line)
			if !ok {
				continue
			}
			if _, exists := os.LookupEnv(key); !exists {
				os.Setenv(key, value)
			}
		}
		return
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func parseEnvLine(line string) (key, value string, ok bool) {
	for i := 0; i < len(line); i++ {
		if line[i] == '#' && i == 0 {
			return "", "", false
		}
	}
	eq := -1
	for i := 0; i < len(line); i++ {
		if line[i] == '=' {
			eq = i
			break
		}
	}
	if eq <= 0 {
		return "", "", false
	}
	key = trimSpace(line[:eq])
	value = trimSpace(line[eq+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t' || s[start] == '\r') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\r') {
		end--
	}
	return s[start:end]
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// Load .env before flag parsing so env-sourced defaults are available
	// for double-clicked binaries that never see a shell environment.
	loadDotEnv()

	if len(os.Args) > 1 && os.Args[1] == "history" {
		runHistory(os.Args[2:])
		return
	}

	storePath := flag.String("store", "", "Path to the static graph/inventory SQLite database (default routesweep.db)")
	historyPath := flag.String("history", "", "Path to the run history SQLite database (default routesweep_history.db)")
	origin := flag.Int64("origin", 0, "Starting system ID (required)")
	startingSite := flag.Int64("starting-site", 0, "Site ID of the starting location, excluded from pickup consideration")
	engine := flag.String("engine", "", "Search engine: \"a\" (adjacency, default) or \"b\" (powerset)")
	volumeBudget := flag.Float64("volume-budget", 0, "Maximum cargo volume to carry (required)")
	timeBudget := flag.Float64("time-budget", 0, "Wall-clock seconds to search before returning the best frontier so far")
	maxSegmentLength := flag.Int("max-segment-length", 0, "Maximum jumps between two consecutive pickups")
	inventoryURL := flag.String("inventory-url", "", "URL of the inventory snapshot service (omit to use the cached snapshot)")
	inventoryToken := envOrDefault("INVENTORY_TOKEN", "")
	recordHistory := flag.Bool("record-history", true, "Persist this run's summary to the history database")
	flag.Parse()

	logger.Banner(version)

	cfg := config.Default()
	if *storePath != "" {
		cfg.StorePath = *storePath
	}
	if *historyPath != "" {
		cfg.HistoryPath = *historyPath
	}
	if *engine != "" {
		cfg.Engine = *engine
	}
	if *maxSegmentLength > 0 {
		cfg.MaxSegmentLength = *maxSegmentLength
	}
	if *timeBudget > 0 {
		cfg.TimeBudgetSeconds = *timeBudget
	}
	cfg.StartingSystemID = *origin
	cfg.StartingSiteID = *startingSite
	cfg.VolumeBudget = *volumeBudget
	cfg.InventoryURL = *inventoryURL
	cfg.InventoryToken = inventoryToken
	cfg.RecordHistory = *recordHistory

	if cfg.StartingSystemID == 0 {
		logger.Error("CONFIG", "-origin is required")
		os.Exit(1)
	}
	if cfg.VolumeBudget <= 0 {
		logger.Error("CONFIG", "-volume-budget is required and must be positive")
		os.Exit(1)
	}

	db, err := store.Open(cfg.StorePath)
	if err != nil {
		logger.Error("STORE", fmt.Sprintf("failed to open: %v", err))
		os.Exit(1)
	}
	defer db.Close()

	g, err := db.LoadGraph(graph.SystemId(cfg.StartingSystemID))
	if err != nil {
		logger.Error("STORE", fmt.Sprintf("failed to load graph: %v", err))
		os.Exit(1)
	}
	logger.Stats("systems", len(g.Systems()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sites, err := loadSites(ctx, db, cfg)
	if err != nil {
		logger.Error("INVENTORY", fmt.Sprintf("failed to load sites: %v", err))
		os.Exit(1)
	}
	logger.Stats("sites", len(sites))

	p, err := planner.New(g, graph.SystemId(cfg.StartingSystemID), sites, site.SiteId(cfg.StartingSiteID), planner.Budgets{
		VolumeBudget:        cfg.VolumeBudget,
		TimeBudgetSeconds:   cfg.TimeBudgetSeconds,
		MaxSegmentLength:    cfg.MaxSegmentLength,
		MaxPriorityDistance: cfg.MaxPriorityDistance,
		PriorityDecay:       cfg.PriorityDecay,
		SolutionsCap:        cfg.SolutionsCap,
		Engine:              planner.EngineKind(cfg.Engine),
	})
	if err != nil {
		logger.Error("PLANNER", err.Error())
		os.Exit(1)
	}

	logger.Section("Searching")
	start := time.Now()
	fr := p.Run(ctx)
	elapsed := time.Since(start)
	logger.Stats("candidates", fr.Len())
	logger.Stats("elapsed_ms", elapsed.Milliseconds())

	logger.Section("Frontier")
	for _, line := range report.Summary(fr) {
		fmt.Println(line)
	}

	if best, ok := fr.BestByValuePerJump(); ok {
		logger.Section("Best route (by value/jump)")
		siteName := func(id site.SiteId) string { return fmt.Sprintf("site %d", id) }
		for _, line := range report.PathLines(best, db.SystemName, siteName) {
			fmt.Println(line)
		}
	} else {
		logger.Warn("FRONTIER", "no candidate routes found")
	}

	if cfg.RecordHistory {
		h, err := history.Open(cfg.HistoryPath)
		if err != nil {
			logger.Warn("HISTORY", fmt.Sprintf("not recorded: %v", err))
		} else {
			h.InsertRun(graph.SystemId(cfg.StartingSystemID), cfg.Engine, cfg.VolumeBudget, fr, elapsed)
			h.Close()
		}
	}
}

// runHistory implements the "routesweep history" subcommand: list the most
// recent recorded runs without touching the graph/inventory/search path.
func runHistory(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	historyPath := fs.String("path", "", "Path to the run history SQLite database (default routesweep_history.db)")
	limit := fs.Int("limit", 20, "Number of recent runs to show")
	fs.Parse(args)

	h, err := history.Open(*historyPath)
	if err != nil {
		logger.Error("HISTORY", fmt.Sprintf("failed to open: %v", err))
		os.Exit(1)
	}
	defer h.Close()

	for _, r := range h.Recent(*limit) {
		fmt.Printf("#%d  %s  origin=%d engine=%s volume_budget=%g frontier=%d best_value=%g best_value_per_jump=%g duration_ms=%d\n",
			r.ID, r.Timestamp, r.OriginSystemID, r.Engine, r.VolumeBudget, r.FrontierSize, r.BestValue, r.BestValuePerJump, r.DurationMs)
	}
}

func loadSites(ctx context.Context, db *store.Store, cfg *config.Config) ([]site.Site, error) {
	if cfg.InventoryURL == "" {
		logger.Info("INVENTORY", "no inventory URL given, using cached snapshot")
		return db.CachedSites()
	}

	client := invclient.New(cfg.InventoryURL, cfg.InventoryToken)
	items, err := client.FetchSnapshot(ctx, cfg.InventoryURL)
	if err != nil {
		logger.Warn("INVENTORY", fmt.Sprintf("fetch failed, falling back to cached snapshot: %v", err))
		return db.CachedSites()
	}
	sites := invclient.FilterEligible(items, cfg.ExcludedCategoryIDs, cfg.MaxSiteVolume)
	if err := db.CacheSites(sites, time.Now().Format(time.RFC3339)); err != nil {
		logger.Warn("STORE", fmt.Sprintf("failed to cache snapshot: %v", err))
	}
	return sites, nil
}
