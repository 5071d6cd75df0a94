package repositories

import (
	"context"
	"database/sql"
	"nav-eval-service/internal/domain"
	"nav-eval-service/internal/platform/db"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(conn))
	return conn
}

var testSeeds = []SampleSeed{
	{Dataset: "sf", SampleID: "sf-002", Prompt: "p2", ExpectedText: "begin: north, market st\ndestination, left"},
	{Dataset: "sf", SampleID: "sf-001", Prompt: "p1", ExpectedText: "begin: east, king st\ndestination, right"},
	{Dataset: "ca", SampleID: "ca-001", ExpectedText: "begin: south, us-101 s\ndestination, left"},
}

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE b = ? AND c IN (?, ?)"
	assert.Equal(t, q, rebind(SQLite, q))
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c IN ($2, $3)", rebind(Postgres, q))
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	assert.NoError(t, InitSchema(conn))
	assert.Error(t, InitSchema(nil))
}

func TestSeedSamples(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	repo := NewSqliteSampleRepository(conn)

	require.NoError(t, SeedSamples(conn, SQLite, testSeeds))

	list, err := repo.ListSamples(ctx, "sf")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "sf-001", list[0].SampleID)
	assert.Equal(t, "sf-002", list[1].SampleID)
	assert.Equal(t, "p1", list[0].Prompt)

	t.Run("upsert replaces expected route", func(t *testing.T) {
		require.NoError(t, SeedSamples(conn, SQLite, []SampleSeed{
			{Dataset: "sf", SampleID: "sf-001", ExpectedText: "destination, left"},
		}))
		got, err := repo.GetSamples(ctx, "sf", []string{"sf-001"})
		require.NoError(t, err)
		assert.Equal(t, "destination, left", got["sf-001"].ExpectedText)
	})

	t.Run("rejects incomplete items", func(t *testing.T) {
		assert.Error(t, SeedSamples(conn, SQLite, []SampleSeed{{Dataset: "sf", ExpectedText: "x"}}))
		assert.Error(t, SeedSamples(conn, SQLite, []SampleSeed{{Dataset: "sf", SampleID: "sf-003", ExpectedText: "  "}}))
	})
}

func TestSeedFromJSON(t *testing.T) {
	conn := openTestDB(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "samples.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"dataset": "sf", "sample_id": "sf-001", "prompt": "go", "expected": "destination, right"}
	]`), 0o600))
	require.NoError(t, SeedFromJSON(conn, SQLite, path))

	got, err := NewSqliteSampleRepository(conn).GetSamples(context.Background(), "sf", []string{"sf-001"})
	require.NoError(t, err)
	require.Contains(t, got, "sf-001")
	assert.Equal(t, "destination, right", got["sf-001"].ExpectedText)

	assert.Error(t, SeedFromJSON(conn, SQLite, filepath.Join(dir, "missing.json")))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	assert.Error(t, SeedFromJSON(conn, SQLite, bad))
}

func TestGetSamplesScopesByDataset(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, SeedSamples(conn, SQLite, testSeeds))

	got, err := NewSqliteSampleRepository(conn).GetSamples(context.Background(), "sf", []string{"sf-001", "ca-001", "nope"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, got, "sf-001")

	empty, err := NewSqliteSampleRepository(conn).GetSamples(context.Background(), "sf", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestResultRepositoryLatestRunPerModel(t *testing.T) {
	ctx := context.Background()
	repo := NewSqliteResultRepository(openTestDB(t))
	t0 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	exact := domain.Evaluation{Exact: true, MostlyCorrect: true, MinorThreshold: 1}
	wrong := domain.Evaluation{MinorMistakes: 2, MajorMistakes: 3, MinorThreshold: 1}

	require.NoError(t, repo.SaveRun(ctx,
		domain.Run{RunID: "r1", Dataset: "sf", Model: "grok-4", CreatedAt: t0},
		[]domain.SampleResult{{SampleID: "sf-001", Evaluation: wrong}},
	))
	require.NoError(t, repo.SaveRun(ctx,
		domain.Run{RunID: "r2", Dataset: "sf", Model: "grok-4", CreatedAt: t0.Add(time.Hour)},
		[]domain.SampleResult{
			{SampleID: "sf-002", OutputTokens: 12, Evaluation: exact},
			{SampleID: "sf-001", OutputTokens: 10, Evaluation: wrong},
		},
	))
	require.NoError(t, repo.SaveRun(ctx,
		domain.Run{RunID: "r3", Dataset: "sf", Model: "gpt-4.1", CreatedAt: t0},
		[]domain.SampleResult{{SampleID: "sf-001", Evaluation: exact}},
	))
	require.NoError(t, repo.SaveRun(ctx,
		domain.Run{RunID: "r4", Dataset: "ca", Model: "gpt-4.1", CreatedAt: t0.Add(2 * time.Hour)},
		[]domain.SampleResult{{SampleID: "ca-001", Evaluation: wrong}},
	))

	byModel, err := repo.ListResultsByModel(ctx, "sf")
	require.NoError(t, err)
	require.Len(t, byModel, 2)

	assert.Equal(t, []domain.SampleResult{
		{SampleID: "sf-001", OutputTokens: 10, Evaluation: wrong},
		{SampleID: "sf-002", OutputTokens: 12, Evaluation: exact},
	}, byModel["grok-4"])
	assert.Equal(t, []domain.SampleResult{{SampleID: "sf-001", Evaluation: exact}}, byModel["gpt-4.1"])

	none, err := repo.ListResultsByModel(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSaveRunRejectsDuplicatesAtomically(t *testing.T) {
	ctx := context.Background()
	repo := NewSqliteResultRepository(openTestDB(t))
	run := domain.Run{RunID: "r1", Dataset: "sf", Model: "m", CreatedAt: time.Now()}

	err := repo.SaveRun(ctx, run, []domain.SampleResult{{SampleID: "a"}, {SampleID: "a"}})
	require.Error(t, err)

	byModel, err := repo.ListResultsByModel(ctx, "sf")
	require.NoError(t, err)
	assert.Empty(t, byModel, "failed run must leave no rows")

	assert.Error(t, repo.SaveRun(ctx, domain.Run{}, nil))
}
