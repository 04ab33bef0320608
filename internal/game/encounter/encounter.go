// Package encounter builds the enemy for each round.
//
// Round flow:
//  1. Player round counter advances, temp bonus resets
//  2. Base enemy power = floor(round^1.3*10 + 5*round + U(-10,30))
//  3. Every 3rd round is a boss round: random boss, enemy x1.8,
//     boss pre-combat effect applied once, boss reward unlocked
//
// RNG draw order per round: base variance, then boss pick (boss rounds only).
package encounter

import (
	"log/slog"
	"math"

	"github.com/udisondev/numberwarrior/internal/model"
	"github.com/udisondev/numberwarrior/internal/rng"
)

// Scaling constants.
const (
	BossInterval       = 3
	BossPowerFactor    = 1.8
	scalingExponent    = 1.3
	scalingBase        = 10.0
	scalingLinear      = 5
	varianceLow        = -10
	varianceHigh       = 30
	vampireDrainFactor = 0.7
	tankShieldFactor   = 1.5
	curseFactor        = 0.9
)

// BossSource supplies the boss roster. *data.Registry implements it.
type BossSource interface {
	Bosses() []model.BossDefinition
}

// Generator computes encounters for successive rounds.
type Generator struct {
	bosses BossSource
	rng    rng.Source
}

// NewGenerator creates a generator drawing bosses from src.
func NewGenerator(bosses BossSource, src rng.Source) *Generator {
	return &Generator{bosses: bosses, rng: src}
}

// IsBossRound reports whether round r is a boss round.
func IsBossRound(r int) bool {
	return r%BossInterval == 0
}

// BasePower is the non-boss enemy power for round r with the given variance.
func BasePower(r, variance int) int {
	return int(math.Floor(math.Pow(float64(r), scalingExponent)*scalingBase +
		float64(scalingLinear*r+variance)))
}

// NextRound advances p to the next round and returns its encounter.
// On boss rounds the boss effect has already been applied when it returns.
func (g *Generator) NextRound(p *model.Player) model.Encounter {
	round := p.StartRound()
	base := BasePower(round, g.rng.IntRange(varianceLow, varianceHigh))

	enc := model.Encounter{Round: round, EnemyPower: max(0, base)}

	if !IsBossRound(round) {
		slog.Debug("round started", "round", round, "enemyPower", enc.EnemyPower)
		return enc
	}

	bosses := g.bosses.Bosses()
	if len(bosses) == 0 {
		slog.Warn("boss round without bosses in catalog", "round", round)
		return enc
	}

	boss := bosses[g.rng.IntRange(0, len(bosses)-1)]
	enc.Boss = &boss
	enc.EnemyPower = int(math.Floor(float64(base) * BossPowerFactor))
	ApplyBossEffect(p, &enc)
	p.SetBossDefeated(false)

	slog.Debug("boss round started",
		"round", round,
		"boss", boss.Name,
		"effect", boss.Effect,
		"enemyPower", enc.EnemyPower,
		"playerPower", p.Power())
	return enc
}

// bossEffects dispatches a boss effect kind to its state transition.
var bossEffects = map[model.BossEffect]func(p *model.Player, e *model.Encounter){
	model.BossEffectVampire: func(p *model.Player, _ *model.Encounter) { p.ScalePower(vampireDrainFactor) },
	model.BossEffectTank:    func(_ *model.Player, e *model.Encounter) { e.ScaleEnemy(tankShieldFactor) },
	model.BossEffectCurse:   func(p *model.Player, _ *model.Encounter) { p.ScalePower(curseFactor) },
}

// ApplyBossEffect applies the encounter boss's pre-combat effect.
// It is a no-op for non-boss encounters.
func ApplyBossEffect(p *model.Player, e *model.Encounter) {
	if !e.IsBossRound() {
		return
	}
	if fx, ok := bossEffects[e.Boss.Effect]; ok {
		fx(p, e)
	}
}
