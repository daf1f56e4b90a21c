// Package history persists a log of completed planning runs in SQLite,
// entirely additive to the core: the planner has no awareness this package
// exists.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"routesweep/internal/frontier"
	"routesweep/internal/graph"
	"routesweep/internal/logger"

	_ "modernc.org/sqlite"
)

// History wraps a SQLite connection dedicated to run records.
type History struct {
	sql *sql.DB
}

func defaultPath() string {
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "routesweep_history.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "routesweep_history.db")
}

// Open opens (or creates) the history database and runs migrations.
func Open(path string) (*History, error) {
	if path == "" {
		path = defaultPath()
	}
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping history: %w", err)
	}
	h := &History{sql: sqlDB}
	if err := h.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	logger.Success("HISTORY", fmt.Sprintf("Opened %s", path))
	return h, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.sql.Close()
}

func (h *History) migrate() error {
	version := 0
	h.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := h.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS run_history (
				id               INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp        TEXT NOT NULL,
				origin_system_id INTEGER NOT NULL,
				engine           TEXT NOT NULL,
				volume_budget    REAL NOT NULL,
				frontier_size    INTEGER NOT NULL,
				best_value       REAL NOT NULL,
				best_value_per_jump REAL NOT NULL,
				duration_ms      INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_run_history_ts ON run_history(timestamp);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("HISTORY", "Applied migration v1 (run history)")
	}
	return nil
}

// Record is a single completed planning run, summarized for display.
type Record struct {
	ID               int64
	Timestamp        string
	OriginSystemID   graph.SystemId
	Engine           string
	VolumeBudget     float64
	FrontierSize     int
	BestValue        float64
	BestValuePerJump float64
	DurationMs       int64
}

// InsertRun records the outcome of a completed run and returns its ID.
func (h *History) InsertRun(origin graph.SystemId, engine string, volumeBudget float64, fr *frontier.Frontier, duration time.Duration) int64 {
	bestValue := 0.0
	if sol, ok := fr.BestByValue(); ok {
		bestValue = sol.TotalValue
	}
	bestVPJ := 0.0
	if sol, ok := fr.BestByValuePerJump(); ok {
		bestVPJ = sol.ValuePerJump
	}

	result, err := h.sql.Exec(
		`INSERT INTO run_history (timestamp, origin_system_id, engine, volume_budget, frontier_size, best_value, best_value_per_jump, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Format(time.RFC3339), int64(origin), engine, volumeBudget, fr.Len(), bestValue, bestVPJ, duration.Milliseconds(),
	)
	if err != nil {
		return 0
	}
	id, _ := result.LastInsertId()
	return id
}

// Recent returns the last N runs, newest first.
func (h *History) Recent(limit int) []Record {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.sql.Query(
		`SELECT id, timestamp, origin_system_id, engine, volume_budget, frontier_size, best_value, best_value_per_jump, duration_ms
		 FROM run_history ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var origin int64
		if err := rows.Scan(&r.ID, &r.Timestamp, &origin, &r.Engine, &r.VolumeBudget, &r.FrontierSize, &r.BestValue, &r.BestValuePerJump, &r.DurationMs); err != nil {
			continue
		}
		r.OriginSystemID = graph.SystemId(origin)
		records = append(records, r)
	}
	return records
}
