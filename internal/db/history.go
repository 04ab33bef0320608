package db

import (
	"context"
	"fmt"
	"time"

	"github.com/udisondev/numberwarrior/internal/model"
)

// History is a run scoreboard.
type History interface {
	Record(ctx context.Context, rec model.RunRecord) error
	Best(ctx context.Context, limit int) ([]model.RunRecord, error)
	Close() error
}

// Open opens the history store for driver ("sqlite" or "postgres").
func Open(ctx context.Context, driver, dsn string) (History, error) {
	switch driver {
	case "sqlite":
		return OpenSQLite(ctx, dsn)
	case "postgres":
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown history driver %q", driver)
	}
}

// DefaultBestLimit is used when Best is asked for a non-positive limit.
const DefaultBestLimit = 10

// rowScanner is implemented by pgx.Rows and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(s rowScanner) (model.RunRecord, error) {
	var (
		rec     model.RunRecord
		endedAt int64 // Unix seconds
	)
	err := s.Scan(&rec.ID, &rec.Rounds, &rec.Coins, &rec.Power, &rec.CritChance,
		&rec.BossesDefeated, &rec.Language, &endedAt)
	if err != nil {
		return model.RunRecord{}, err
	}
	rec.EndedAt = time.Unix(endedAt, 0).UTC()
	return rec, nil
}

func bestLimit(limit int) int {
	if limit <= 0 {
		return DefaultBestLimit
	}
	return limit
}
