package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/udisondev/numberwarrior/internal/model"
)

// PostgresHistory stores finished runs in PostgreSQL.
type PostgresHistory struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to PostgreSQL and applies migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresHistory, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// goose needs a *sql.DB; reuse the pool's connection config.
	sqlDB, err := sql.Open("pgx", stdlib.RegisterConnConfig(pool.Config().ConnConfig))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	if err := RunMigrations(ctx, sqlDB, "postgres"); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresHistory{pool: pool}, nil
}

// Close closes the connection pool.
func (h *PostgresHistory) Close() error {
	h.pool.Close()
	return nil
}

// Record inserts a finished run.
func (h *PostgresHistory) Record(ctx context.Context, rec model.RunRecord) error {
	_, err := h.pool.Exec(ctx,
		`INSERT INTO run_history (rounds, coins, power, crit_chance, bosses_defeated, language, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.Rounds, rec.Coins, rec.Power, rec.CritChance, rec.BossesDefeated, rec.Language, rec.EndedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	slog.Debug("run recorded", "driver", "postgres", "rounds", rec.Rounds)
	return nil
}

// Best returns the longest runs, most coins first among equals.
func (h *PostgresHistory) Best(ctx context.Context, limit int) ([]model.RunRecord, error) {
	rows, err := h.pool.Query(ctx,
		`SELECT id, rounds, coins, power, crit_chance, bosses_defeated, language, ended_at
		 FROM run_history ORDER BY rounds DESC, coins DESC, id ASC LIMIT $1`, bestLimit(limit))
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
