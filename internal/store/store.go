// Package store loads the static graph and candidate inventory sites from
// a local SQLite database, mirroring the original static-data dump schema
// (solar system jumps, stations, solar systems) plus a planner-owned sites
// table layered on top.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"routesweep/internal/graph"
	"routesweep/internal/logger"
	"routesweep/internal/site"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite connection to the static data database.
type Store struct {
	sql *sql.DB
}

func defaultPath() string {
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "routesweep.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "routesweep.db")
}

// Open opens (or creates) the SQLite database at path and runs migrations.
// An empty path falls back to routesweep.db in the working directory.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath()
	}
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping store: %w", err)
	}
	s := &Store{sql: sqlDB}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	logger.Success("STORE", fmt.Sprintf("Opened %s", path))
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.sql.Close()
}

func (s *Store) migrate() error {
	version := 0
	s.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := s.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS mapSolarSystems (
				solarSystemID   INTEGER PRIMARY KEY,
				solarSystemName TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS mapSolarSystemJumps (
				fromSolarSystemID INTEGER NOT NULL,
				toSolarSystemID   INTEGER NOT NULL,
				PRIMARY KEY (fromSolarSystemID, toSolarSystemID)
			);
			CREATE INDEX IF NOT EXISTS idx_jumps_from ON mapSolarSystemJumps(fromSolarSystemID);

			CREATE TABLE IF NOT EXISTS staStations (
				stationID       INTEGER PRIMARY KEY,
				stationName     TEXT NOT NULL,
				solarSystemID   INTEGER NOT NULL
			);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("STORE", "Applied migration v1 (static universe)")
	}

	if version < 2 {
		_, err := s.sql.Exec(`
			CREATE TABLE IF NOT EXISTS routesweep_sites (
				site_id   INTEGER PRIMARY KEY,
				system_id INTEGER NOT NULL,
				value     REAL NOT NULL,
				volume    REAL NOT NULL,
				fetched_at TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_sites_system ON routesweep_sites(system_id);

			INSERT OR IGNORE INTO schema_version (version) VALUES (2);
		`)
		if err != nil {
			return fmt.Errorf("migration v2: %w", err)
		}
		logger.Info("STORE", "Applied migration v2 (sites)")
	}

	return nil
}

// LoadGraph reads every jump edge and builds a Graph rooted at
// startingSystem. Edges are stored directed in the source table
// (fromSolarSystemID, toSolarSystemID come in both orders for a symmetric
// jump); a row whose reverse is missing is reported as InvalidGraphError
// rather than silently symmetrized by the Builder.
func (s *Store) LoadGraph(startingSystem graph.SystemId) (*graph.Graph, error) {
	rows, err := s.sql.Query(`SELECT fromSolarSystemID, toSolarSystemID FROM mapSolarSystemJumps ORDER BY fromSolarSystemID`)
	if err != nil {
		return nil, fmt.Errorf("query jumps: %w", err)
	}
	defer rows.Close()

	directed := make(map[[2]int64]bool)
	for rows.Next() {
		var from, to int64
		if err := rows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("scan jump row: %w", err)
		}
		directed[[2]int64{from, to}] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jumps: %w", err)
	}
	b := graph.NewBuilder()
	for edge := range directed {
		if !directed[[2]int64{edge[1], edge[0]}] {
			return nil, &graph.InvalidGraphError{Reason: fmt.Sprintf("edge %d->%d is not symmetric", edge[0], edge[1])}
		}
		b.AddEdge(graph.SystemId(edge[0]), graph.SystemId(edge[1]))
	}
	return b.Build(startingSystem)
}

// SystemName looks up a solar system's display name, falling back to a
// synthetic label when the id is unknown (e.g. player structures not
// present in the static dump).
func (s *Store) SystemName(id graph.SystemId) string {
	var name string
	err := s.sql.QueryRow(`SELECT solarSystemName FROM mapSolarSystems WHERE solarSystemID = ?`, int64(id)).Scan(&name)
	if err != nil {
		return fmt.Sprintf("System %d", id)
	}
	return name
}

// StationName looks up a station's display name.
func (s *Store) StationName(stationID int64) string {
	var name string
	err := s.sql.QueryRow(`SELECT stationName FROM staStations WHERE stationID = ?`, stationID).Scan(&name)
	if err != nil {
		return fmt.Sprintf("Station %d", stationID)
	}
	return name
}

// CacheSites persists a freshly fetched inventory snapshot, replacing
// whatever was cached before. This is a convenience for warm-starting
// subsequent runs without re-fetching from the inventory service; the
// planner itself never reads this table directly.
func (s *Store) CacheSites(sites []site.Site, fetchedAt string) error {
	tx, err := s.sql.Begin()
	if err != nil {
		return fmt.Errorf("begin cache sites: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM routesweep_sites`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear sites: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO routesweep_sites (site_id, system_id, value, volume, fetched_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, site := range sites {
		if _, err := stmt.Exec(int64(site.ID), int64(site.System), site.Value, site.Volume, fetchedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert site %d: %w", site.ID, err)
		}
	}
	return tx.Commit()
}

// CachedSites returns the most recently cached inventory snapshot, or an
// empty slice if none has been cached yet.
func (s *Store) CachedSites() ([]site.Site, error) {
	rows, err := s.sql.Query(`SELECT site_id, system_id, value, volume FROM routesweep_sites`)
	if err != nil {
		return nil, fmt.Errorf("query sites: %w", err)
	}
	defer rows.Close()

	var sites []site.Site
	for rows.Next() {
		var id, system int64
		var value, volume float64
		if err := rows.Scan(&id, &system, &value, &volume); err != nil {
			return nil, fmt.Errorf("scan site row: %w", err)
		}
		sites = append(sites, site.Site{ID: site.SiteId(id), System: graph.SystemId(system), Value: value, Volume: volume})
	}
	return sites, rows.Err()
}
