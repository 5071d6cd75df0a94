package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Dialect selects placeholder syntax for statements shared by SQLite and Postgres.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// rebind rewrites "?" placeholders to "$1, $2, ..." for Postgres.
func rebind(d Dialect, query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Initialize the database schema. The DDL is valid for both SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSamplesQuery := `
	CREATE TABLE IF NOT EXISTS samples (
		dataset TEXT NOT NULL,
		sample_id TEXT NOT NULL,
		prompt TEXT NOT NULL DEFAULT '',
		expected_text TEXT NOT NULL,
		PRIMARY KEY (dataset, sample_id)
	);
	`

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		dataset TEXT NOT NULL,
		model TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createSampleResultsQuery := `
	CREATE TABLE IF NOT EXISTS sample_results (
		run_id TEXT NOT NULL,
		sample_id TEXT NOT NULL,
		output_tokens INTEGER NOT NULL,
		exact BOOLEAN NOT NULL,
		mostly_correct BOOLEAN NOT NULL,
		minor_mistakes INTEGER NOT NULL,
		major_mistakes INTEGER NOT NULL,
		minor_threshold INTEGER NOT NULL,
		PRIMARY KEY (run_id, sample_id)
	);
	`

	createEvaluationCacheQuery := `
	CREATE TABLE IF NOT EXISTS evaluation_cache (
		cache_key TEXT PRIMARY KEY,
		exact BOOLEAN NOT NULL,
		mostly_correct BOOLEAN NOT NULL,
		minor_mistakes INTEGER NOT NULL,
		major_mistakes INTEGER NOT NULL,
		minor_threshold INTEGER NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_runs_dataset_model
	ON runs(dataset, model, created_at);
	`

	statements := []string{
		createSamplesQuery,
		createRunsQuery,
		createSampleResultsQuery,
		createEvaluationCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type SampleSeed struct {
	Dataset      string `json:"dataset"`
	SampleID     string `json:"sample_id"`
	Prompt       string `json:"prompt"`
	ExpectedText string `json:"expected"`
}

// Populate the samples table from a JSON array of reference routes.
func SeedFromJSON(db *sql.DB, d Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed samples: read %q: %w", jsonPath, err)
	}

	var data []SampleSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed samples: parse json: %w", err)
	}

	return SeedSamples(db, d, data)
}

// Insert or update reference samples in a single transaction.
func SeedSamples(db *sql.DB, d Dialect, data []SampleSeed) error {
	rows := make([]SampleSeed, 0, len(data))
	for i, item := range data {
		dataset := strings.TrimSpace(item.Dataset)
		id := strings.TrimSpace(item.SampleID)
		if dataset == "" || id == "" {
			return fmt.Errorf("seed samples: item at index %d: dataset and sample_id are required", i+1)
		}
		if strings.TrimSpace(item.ExpectedText) == "" {
			return fmt.Errorf("seed samples: item %s/%s: expected route cannot be empty", dataset, id)
		}
		rows = append(rows, SampleSeed{Dataset: dataset, SampleID: id, Prompt: item.Prompt, ExpectedText: item.ExpectedText})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed samples: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := rebind(d, `
	INSERT INTO samples (dataset, sample_id, prompt, expected_text)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (dataset, sample_id) DO UPDATE
	SET prompt = excluded.prompt,
		expected_text = excluded.expected_text;
	`)
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed samples: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range rows {
		if _, err := stmt.Exec(s.Dataset, s.SampleID, s.Prompt, s.ExpectedText); err != nil {
			return fmt.Errorf("seed samples: insert %s/%s: %w", s.Dataset, s.SampleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed samples: commit tx: %w", err)
	}

	return nil
}
