package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NW_"

// DefaultPath is used when NW_CONFIG is not set.
const DefaultPath = "config/numberwarrior.yaml"

// Game holds all configuration for a game process.
type Game struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	Language string `yaml:"language" env:"LANGUAGE"`

	// Data directories; missing directories are skipped.
	LangDir string `yaml:"lang_dir" env:"LANG_DIR"`
	ModsDir string `yaml:"mods_dir" env:"MODS_DIR"`

	// Seed 0 picks a time-based seed.
	Seed uint64 `yaml:"seed" env:"SEED"`

	Start   StartConfig   `yaml:"start" envPrefix:"START_"`
	History HistoryConfig `yaml:"history" envPrefix:"HISTORY_"`
}

// StartConfig holds the stats a new run starts with.
type StartConfig struct {
	Power      int `yaml:"power" env:"POWER"`
	Coins      int `yaml:"coins" env:"COINS"`
	Health     int `yaml:"health" env:"HEALTH"`
	CritChance int `yaml:"crit_chance" env:"CRIT_CHANCE"`
}

// HistoryConfig selects where finished runs are stored.
type HistoryConfig struct {
	// Driver is "", "sqlite" or "postgres". Empty disables history.
	Driver string `yaml:"driver" env:"DRIVER"`
	// DSN is a file path for sqlite or a URL for postgres. For postgres an
	// empty DSN is built from Database.
	DSN      string         `yaml:"dsn" env:"DSN"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// ResolvedDSN returns the DSN to open for the configured driver.
func (h HistoryConfig) ResolvedDSN() string {
	if h.DSN == "" && h.Driver == "postgres" {
		return h.Database.DSN()
	}
	return h.DSN
}

// DefaultGame returns Game config with sensible defaults.
func DefaultGame() Game {
	return Game{
		LogLevel: "info",
		Language: "en",
		LangDir:  "lang",
		ModsDir:  "mods",
		Start: StartConfig{
			Power:      100,
			Coins:      0,
			Health:     3,
			CritChance: 15,
		},
		History: HistoryConfig{
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "numberwarrior",
				Password: "numberwarrior",
				DBName:   "numberwarrior",
				SSLMode:  "disable",
			},
		},
	}
}

// PathFromEnv returns NW_CONFIG or DefaultPath.
func PathFromEnv() string {
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// LoadGame loads game config from a YAML file and applies NW_* environment
// overrides. If the file doesn't exist, defaults are used.
func LoadGame(path string) (Game, error) {
	return loadGame(path, nil)
}

// loadGame reads overrides from environ, or the process environment when nil.
func loadGame(path string, environ map[string]string) (Game, error) {
	cfg := DefaultGame()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (g Game) Validate() error {
	switch g.History.Driver {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown history driver %q", g.History.Driver)
	}
	if g.History.Driver == "sqlite" && g.History.DSN == "" {
		return fmt.Errorf("history driver sqlite needs a dsn")
	}
	if g.Start.Health < 1 {
		return fmt.Errorf("start health must be positive, got %d", g.Start.Health)
	}
	if g.Start.CritChance < 0 || g.Start.CritChance > 100 {
		return fmt.Errorf("start crit chance %d outside 0..100", g.Start.CritChance)
	}
	return nil
}
