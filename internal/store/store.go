// Package store persists completed analysis runs in a local SQLite
// database so they can be listed and re-rendered without re-running the
// pipeline.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"reviewlens/internal/core"
)

// Store is the SQLite-backed run repository.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the run database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "reviewlens.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the runs table
func (s *Store) initialize() error {
	runsTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		category TEXT,
		submitted_reviews INTEGER,
		survived_reviews INTEGER,
		dropped_reviews INTEGER,
		bundle TEXT,
		sections TEXT,
		model_used TEXT,
		date_generated DATETIME
	);`

	if _, err := s.db.Exec(runsTable); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a completed analysis run. Saving the same run ID again
// replaces the stored row.
func (s *Store) SaveRun(run *core.AnalysisRun) error {
	bundle, err := json.Marshal(run.Bundle)
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}
	sections, err := json.Marshal(run.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO runs
	(id, category, submitted_reviews, survived_reviews, dropped_reviews, bundle, sections, model_used, date_generated)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.Exec(query,
		run.ID,
		run.Category,
		run.SubmittedReviews,
		run.SurvivedReviews,
		run.DroppedReviews,
		string(bundle),
		string(sections),
		run.ModelUsed,
		run.DateGenerated,
	)
	return err
}

// GetRun retrieves a run by ID. Returns (nil, nil) when the run does not
// exist.
func (s *Store) GetRun(id string) (*core.AnalysisRun, error) {
	query := `
	SELECT id, category, submitted_reviews, survived_reviews, dropped_reviews, bundle, sections, model_used, date_generated
	FROM runs WHERE id = ?`

	row := s.db.QueryRow(query, id)

	var run core.AnalysisRun
	var bundleJSON, sectionsJSON string

	err := row.Scan(
		&run.ID,
		&run.Category,
		&run.SubmittedReviews,
		&run.SurvivedReviews,
		&run.DroppedReviews,
		&bundleJSON,
		&sectionsJSON,
		&run.ModelUsed,
		&run.DateGenerated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	if err := json.Unmarshal([]byte(bundleJSON), &run.Bundle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bundle: %w", err)
	}
	if err := json.Unmarshal([]byte(sectionsJSON), &run.Sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}

	return &run, nil
}

// RunInfo is a lightweight listing row for stored runs.
type RunInfo struct {
	ID              string    `json:"id"`
	Category        string    `json:"category"`
	SurvivedReviews int       `json:"survived_reviews"`
	ModelUsed       string    `json:"model_used"`
	DateGenerated   time.Time `json:"date_generated"`
}

// ListRuns returns stored runs, newest first.
func (s *Store) ListRuns() ([]RunInfo, error) {
	query := `
	SELECT id, category, survived_reviews, model_used, date_generated
	FROM runs ORDER BY date_generated DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		if err := rows.Scan(&info.ID, &info.Category, &info.SurvivedReviews, &info.ModelUsed, &info.DateGenerated); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// DeleteRun removes a stored run by ID.
func (s *Store) DeleteRun(id string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}
