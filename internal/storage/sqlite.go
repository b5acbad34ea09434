// Package storage provides SQLite-based persistence for command run
// history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run-history persistence.
type Store struct {
	db *sql.DB
}

// RunRecord represents one executed command sequence.
type RunRecord struct {
	ID        int64
	Robot     string // "arm" or "rover"
	Script    string // script file name or "-" for stdin
	Commands  int    // commands parsed from the script
	Executed  int    // commands actually applied to the active robot
	Duration  int    // wall-clock duration in milliseconds
	EndReason string // "completed" or "cancelled"
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			robot TEXT NOT NULL,
			script TEXT NOT NULL,
			commands INTEGER NOT NULL DEFAULT 0,
			executed INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_robot ON runs(robot);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a completed (or interrupted) run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(rec RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (robot, script, commands, executed, duration_ms, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Robot, rec.Script, rec.Commands, rec.Executed, rec.Duration, rec.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs across all robots.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, robot, script, commands, executed, duration_ms, end_reason, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunsForRobot retrieves the most recent runs for one robot.
func (s *Store) RunsForRobot(robot string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, robot, script, commands, executed, duration_ms, end_reason, created_at
		 FROM runs
		 WHERE robot = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		robot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunByID retrieves a single run, or nil if it does not exist.
func (s *Store) RunByID(id int64) (*RunRecord, error) {
	var rec RunRecord
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, robot, script, commands, executed, duration_ms, end_reason, created_at
		 FROM runs
		 WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Robot, &rec.Script, &rec.Commands, &rec.Executed,
		&rec.Duration, &rec.EndReason, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	rec.CreatedAt = parseTimestamp(createdAt)
	return &rec, nil
}

// ClearRuns deletes all runs for the given robot.
func (s *Store) ClearRuns(robot string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE robot = ?", robot)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RobotStats contains aggregated run statistics for one robot.
type RobotStats struct {
	Robot         string
	RunsCount     int
	TotalCommands int64
	AvgDurationMS float64
	LastRun       time.Time
}

// GetRobotStats retrieves aggregated statistics for a specific robot.
func (s *Store) GetRobotStats(robot string) (*RobotStats, error) {
	stats := &RobotStats{Robot: robot}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(executed), 0), COALESCE(AVG(duration_ms), 0)
		 FROM runs WHERE robot = ?`,
		robot,
	).Scan(&stats.RunsCount, &stats.TotalCommands, &stats.AvgDurationMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get robot stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE robot = ? ORDER BY created_at DESC LIMIT 1`,
		robot,
	).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTimestamp(lastRun)
	}

	return stats, nil
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.Robot, &rec.Script, &rec.Commands,
			&rec.Executed, &rec.Duration, &rec.EndReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTimestamp(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTimestamp handles both time.Time and string values the driver may
// return for DATETIME columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
