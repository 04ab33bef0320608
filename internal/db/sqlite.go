package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/udisondev/numberwarrior/internal/model"
)

// SQLiteHistory stores finished runs in a local SQLite file.
type SQLiteHistory struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteHistory, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging sqlite %s: %w", path, err)
	}
	if err := RunMigrations(ctx, sqlDB, "sqlite3"); err != nil {
		sqlDB.Close()
		return nil, err
	}
	// One writer at a time.
	sqlDB.SetMaxOpenConns(1)
	return &SQLiteHistory{db: sqlDB}, nil
}

// Close closes the database.
func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}

// Record inserts a finished run.
func (h *SQLiteHistory) Record(ctx context.Context, rec model.RunRecord) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO run_history (rounds, coins, power, crit_chance, bosses_defeated, language, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Rounds, rec.Coins, rec.Power, rec.CritChance, rec.BossesDefeated, rec.Language, rec.EndedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	slog.Debug("run recorded", "driver", "sqlite", "rounds", rec.Rounds)
	return nil
}

// Best returns the longest runs, most coins first among equals.
func (h *SQLiteHistory) Best(ctx context.Context, limit int) ([]model.RunRecord, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, rounds, coins, power, crit_chance, bosses_defeated, language, ended_at
		 FROM run_history ORDER BY rounds DESC, coins DESC, id ASC LIMIT ?`, bestLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query run_history: %w", err)
	}
	defer rows.Close()

	var result []model.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run_history: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run_history: %w", err)
	}
	return result, nil
}
