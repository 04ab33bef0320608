package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/numberwarrior/internal/config"
	"github.com/udisondev/numberwarrior/internal/data"
	"github.com/udisondev/numberwarrior/internal/db"
	"github.com/udisondev/numberwarrior/internal/game/session"
	"github.com/udisondev/numberwarrior/internal/i18n"
	"github.com/udisondev/numberwarrior/internal/model"
	"github.com/udisondev/numberwarrior/internal/rng"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := config.PathFromEnv()
	cfg, err := config.LoadGame(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// stdout belongs to the game; logs go to stderr
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("numberwarrior starting", "config", cfgPath, "log_level", cfg.LogLevel)

	reg := data.NewBuiltinRegistry()
	if _, err := reg.LoadMods(cfg.ModsDir); err != nil {
		return fmt.Errorf("loading mods: %w", err)
	}
	if err := reg.Close(); err != nil {
		return fmt.Errorf("sealing catalog: %w", err)
	}

	tr, err := i18n.New()
	if err != nil {
		return fmt.Errorf("loading locales: %w", err)
	}
	if err := tr.LoadDir(cfg.LangDir); err != nil {
		return fmt.Errorf("loading languages from %s: %w", cfg.LangDir, err)
	}

	var history db.History
	if cfg.History.Driver != "" {
		history, err = db.Open(ctx, cfg.History.Driver, cfg.History.ResolvedDSN())
		if err != nil {
			return fmt.Errorf("opening run history: %w", err)
		}
		defer history.Close()
		slog.Info("run history enabled", "driver", cfg.History.Driver)
	}

	src := rng.New(cfg.Seed)
	stats := model.Stats{
		Power:      cfg.Start.Power,
		Coins:      cfg.Start.Coins,
		Health:     cfg.Start.Health,
		CritChance: cfg.Start.CritChance,
	}
	newSession := func(lang string) (*session.Session, error) {
		opts := []session.Option{session.WithLanguage(lang)}
		if history != nil {
			opts = append(opts, session.WithRecorder(history))
		}
		return session.New(reg, src, stats, opts...)
	}

	con, err := newConsole(os.Stdout, tr, reg, history, newSession, tr.Resolve(cfg.Language))
	if err != nil {
		return err
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	// The reader blocks on stdin and is not joined; it ends with the process.
	lines := make(chan string)
	go readLines(os.Stdin, lines)

	g.Go(func() error {
		defer stop()
		return con.Run(gctx, lines)
	})

	return g.Wait()
}

func readLines(r io.Reader, out chan<- string) {
	defer close(out)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out <- sc.Text()
	}
	if err := sc.Err(); err != nil {
		slog.Warn("reading input", "err", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
