package db

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/udisondev/numberwarrior/internal/model"
	"github.com/udisondev/numberwarrior/internal/testutil"
)

var endedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleRuns() []model.RunRecord {
	return []model.RunRecord{
		{Rounds: 4, Coins: 120, Power: 150, CritChance: 15, Language: "en", EndedAt: endedAt},
		{Rounds: 9, Coins: 300, Power: 420, CritChance: 35, BossesDefeated: 2, Language: "ru", EndedAt: endedAt.Add(time.Hour)},
		{Rounds: 9, Coins: 80, Power: 390, CritChance: 15, BossesDefeated: 3, Language: "en", EndedAt: endedAt.Add(2 * time.Hour)},
		{Rounds: 1, Coins: 0, Power: 100, CritChance: 15, Language: "en", EndedAt: endedAt.Add(3 * time.Hour)},
	}
}

// exerciseHistory runs the shared scoreboard checks against any store.
func exerciseHistory(t *testing.T, h History) {
	t.Helper()
	ctx := testutil.Context(t, 30*time.Second)

	empty, err := h.Best(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, rec := range sampleRuns() {
		require.NoError(t, h.Record(ctx, rec))
	}

	best, err := h.Best(ctx, 3)
	require.NoError(t, err)
	require.Len(t, best, 3)

	assert.Equal(t, 9, best[0].Rounds)
	assert.Equal(t, 300, best[0].Coins, "coins break round ties")
	assert.Equal(t, "ru", best[0].Language)
	assert.Equal(t, 2, best[0].BossesDefeated)
	assert.Equal(t, endedAt.Add(time.Hour), best[0].EndedAt)
	assert.NotZero(t, best[0].ID)

	assert.Equal(t, 80, best[1].Coins)
	assert.Equal(t, 4, best[2].Rounds)

	all, err := h.Best(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4, "non-positive limit uses the default")
}

func TestSQLiteHistory(t *testing.T) {
	t.Parallel()

	h, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	exerciseHistory(t, h)
}

func TestSQLiteHistory_ReopenKeepsRuns(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	h, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, h.Record(ctx, sampleRuns()[0]))
	require.NoError(t, h.Close())

	h, err = OpenSQLite(ctx, path)
	require.NoError(t, err, "migrations are idempotent")
	t.Cleanup(func() { _ = h.Close() })

	best, err := h.Best(ctx, 10)
	require.NoError(t, err)
	require.Len(t, best, 1)
	assert.Equal(t, 120, best[0].Coins)
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "mongo", "x")
	require.Error(t, err)
}

func TestRunMigrations_UnknownDialect(t *testing.T) {
	t.Parallel()

	err := RunMigrations(context.Background(), nil, "mysql")
	require.Error(t, err)
}

func TestPostgresHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := testutil.Context(t, 3*time.Minute)

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "starting postgres container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	h, err := Open(ctx, "postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	exerciseHistory(t, h)
}
