// Package session owns one run of the game and sequences the engines.
//
// Lifecycle:
//  1. New requires a sealed catalog, creates the player and starts
//     round 1 (Init -> RoundActive)
//  2. Attack resolves combat; the encounter advances unless the run ends
//  3. Buy applies a shop item; a purchase that costs the last life ends it
//  4. On game over the run is Terminal, recorded once, and every further
//     Attack or Buy returns ErrAlreadyTerminated without touching state
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/udisondev/numberwarrior/internal/data"
	"github.com/udisondev/numberwarrior/internal/game/combat"
	"github.com/udisondev/numberwarrior/internal/game/encounter"
	"github.com/udisondev/numberwarrior/internal/game/shop"
	"github.com/udisondev/numberwarrior/internal/model"
	"github.com/udisondev/numberwarrior/internal/rng"
)

var (
	ErrAlreadyTerminated = errors.New("run already terminated")
	ErrCatalogNotSealed  = errors.New("catalog is not sealed")
)

// State is the session lifecycle state.
type State int

const (
	StateInit State = iota
	StateRoundActive
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRoundActive:
		return "round_active"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// HistoryRecorder stores finished runs. *db.SQLiteHistory and
// *db.PostgresHistory implement it.
type HistoryRecorder interface {
	Record(ctx context.Context, rec model.RunRecord) error
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder records the run when it ends.
func WithRecorder(r HistoryRecorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithLanguage sets the initial language code.
func WithLanguage(code string) Option {
	return func(s *Session) { s.lang = code }
}

// Snapshot is a read-only view of the session for presentation.
type Snapshot struct {
	State          State                   `json:"state"`
	Language       string                  `json:"language"`
	Player         model.PlayerSnapshot    `json:"player"`
	Encounter      model.EncounterSnapshot `json:"encounter"`
	BossesDefeated int                     `json:"bosses_defeated"`
	// LastOutcome is the outcome of the latest attack, nil before the first.
	LastOutcome *combat.Outcome `json:"last_outcome,omitempty"`
}

// Session is a single run. It is not safe for concurrent use.
type Session struct {
	player   *model.Player
	enc      model.Encounter
	rounds   *encounter.Generator
	resolver *combat.Resolver
	shop     *shop.Engine

	state    State
	lang     string
	last     *combat.Outcome
	bosses   int
	recorder HistoryRecorder
}

// New starts a run over a sealed catalog.
func New(reg *data.Registry, src rng.Source, stats model.Stats, opts ...Option) (*Session, error) {
	if !reg.Closed() {
		return nil, ErrCatalogNotSealed
	}

	gen := encounter.NewGenerator(reg, src)
	s := &Session{
		player:   model.NewPlayer(stats),
		rounds:   gen,
		resolver: combat.NewResolver(gen, src),
		shop:     shop.NewEngine(reg, gen, src),
		state:    StateInit,
		lang:     "en",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.enc = s.rounds.NextRound(s.player)
	s.state = StateRoundActive
	slog.Info("run started",
		"power", s.player.Power(),
		"health", s.player.Health(),
		"enemyPower", s.enc.EnemyPower)
	return s, nil
}

// Attack resolves one attack against the current enemy.
func (s *Session) Attack(ctx context.Context) (combat.Result, error) {
	if s.state == StateTerminal {
		return combat.Result{}, ErrAlreadyTerminated
	}
	if err := combat.ValidateAttack(s.player, &s.enc); err != nil {
		return combat.Result{}, err
	}

	res := s.resolver.Fight(s.player, &s.enc)
	s.last = &res.Outcome
	switch res.Outcome {
	case combat.OutcomeBossVictory:
		s.bosses++
	case combat.OutcomeGameOver:
		s.terminate(ctx)
	}
	return res, nil
}

// Buy purchases the shop item at index. A purchase that leaves the player
// without lives ends the run; the receipt is still returned.
func (s *Session) Buy(ctx context.Context, index int) (shop.Receipt, error) {
	if s.state == StateTerminal {
		return shop.Receipt{}, ErrAlreadyTerminated
	}

	receipt, err := s.shop.Buy(s.player, &s.enc, index)
	if err != nil {
		return shop.Receipt{}, err
	}
	if s.player.IsDead() {
		over := combat.OutcomeGameOver
		s.last = &over
		s.terminate(ctx)
	}
	return receipt, nil
}

// Offers lists the items currently for sale.
func (s *Session) Offers() []shop.Offer {
	return s.shop.Offers(s.player)
}

// SelectLanguage switches the presentation language. Game state is unaffected.
func (s *Session) SelectLanguage(code string) {
	s.lang = code
}

func (s *Session) Language() string { return s.lang }
func (s *Session) State() State     { return s.state }

// Encounter returns the current encounter.
func (s *Session) Encounter() model.Encounter { return s.enc }

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:          s.state,
		Language:       s.lang,
		Player:         s.player.Snapshot(),
		Encounter:      s.enc.Snapshot(),
		BossesDefeated: s.bosses,
	}
	if s.last != nil {
		o := *s.last
		snap.LastOutcome = &o
	}
	return snap
}

// RunRecord summarizes the run so far.
func (s *Session) RunRecord() model.RunRecord {
	return model.RunRecord{
		Rounds:         s.player.Round(),
		Coins:          s.player.Coins(),
		Power:          s.player.Power(),
		CritChance:     s.player.CritChance(),
		BossesDefeated: s.bosses,
		Language:       s.lang,
		EndedAt:        time.Now().UTC(),
	}
}

func (s *Session) terminate(ctx context.Context) {
	s.state = StateTerminal
	rec := s.RunRecord()
	slog.Info("run finished",
		"rounds", rec.Rounds,
		"coins", rec.Coins,
		"power", rec.Power,
		"bosses", rec.BossesDefeated)

	if s.recorder == nil {
		return
	}
	// The run is over either way; a failed write only loses the score.
	if err := s.recorder.Record(ctx, rec); err != nil {
		slog.Warn("recording run failed", "error", err)
	}
}
