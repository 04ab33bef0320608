// Package combat resolves a single attack against the current encounter.
//
// Attack flow:
//  1. effective = floor(power * tempBonus)
//  2. Crit roll U(1,100) <= critChance doubles effective power
//  3. effective > enemy: reward U(25,60) + round*6, boss multiplier once
//     per boss round, coins credited, next round
//  4. Otherwise one life lost; at zero lives the run is over, else
//     power x0.9 and next round
//
// RNG draw order: crit roll, reward roll (victory only), then the next
// round's draws.
package combat

import (
	"log/slog"
	"math"

	"github.com/udisondev/numberwarrior/internal/model"
	"github.com/udisondev/numberwarrior/internal/rng"
)

const (
	critRollMax      = 100
	critMultiplier   = 2
	rewardLow        = 25
	rewardHigh       = 60
	rewardPerRound   = 6
	defeatPowerScale = 0.9
)

// Outcome is the tagged result of a fight.
type Outcome int

const (
	OutcomeVictory Outcome = iota
	OutcomeBossVictory
	OutcomeDefeat
	OutcomeGameOver
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeBossVictory:
		return "boss_victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Result describes a resolved attack.
type Result struct {
	Outcome        Outcome
	Critical       bool
	EffectivePower int
	EnemyPower     int
	// Reward is the coins credited. Zero on defeat.
	Reward int
	// LivesLeft is the player's health after the fight.
	LivesLeft int
	// Boss is the defeated boss on OutcomeBossVictory.
	Boss *model.BossDefinition
}

// RoundAdvancer starts the next round. *encounter.Generator implements it.
type RoundAdvancer interface {
	NextRound(p *model.Player) model.Encounter
}

// Resolver resolves attacks.
type Resolver struct {
	rounds RoundAdvancer
	rng    rng.Source
}

// NewResolver creates a Resolver that advances rounds through rounds.
func NewResolver(rounds RoundAdvancer, src rng.Source) *Resolver {
	return &Resolver{rounds: rounds, rng: src}
}

// RollCritical reports whether roll (1..100) lands a critical hit.
func RollCritical(roll, critChance int) bool {
	return roll <= critChance
}

// Reward is the coin reward for a win in round with the given roll,
// scaled by mult and floored.
func Reward(round, roll int, mult float64) int {
	base := roll + round*rewardPerRound
	if mult <= 1 {
		return base
	}
	return int(math.Floor(float64(base) * mult))
}

// Fight resolves one attack of p against enc. Unless the run ends, enc is
// replaced by the next round's encounter before Fight returns.
func (r *Resolver) Fight(p *model.Player, enc *model.Encounter) Result {
	res := Result{
		EffectivePower: p.EffectivePower(),
		EnemyPower:     enc.EnemyPower,
	}

	if RollCritical(r.rng.IntRange(1, critRollMax), p.CritChance()) {
		res.Critical = true
		res.EffectivePower *= critMultiplier
	}

	if res.EffectivePower > enc.EnemyPower {
		r.win(p, enc, &res)
		return res
	}

	res.LivesLeft = p.LoseLife()
	if res.LivesLeft <= 0 {
		res.Outcome = OutcomeGameOver
		slog.Info("game over",
			"round", p.Round(),
			"coins", p.Coins(),
			"power", p.Power())
		return res
	}

	res.Outcome = OutcomeDefeat
	p.ScalePower(defeatPowerScale)
	slog.Debug("defeat",
		"round", p.Round(),
		"effectivePower", res.EffectivePower,
		"enemyPower", res.EnemyPower,
		"livesLeft", res.LivesLeft)
	*enc = r.rounds.NextRound(p)
	return res
}

func (r *Resolver) win(p *model.Player, enc *model.Encounter, res *Result) {
	roll := r.rng.IntRange(rewardLow, rewardHigh)
	res.Outcome = OutcomeVictory
	res.Reward = Reward(enc.Round, roll, 1)

	if enc.IsBossRound() && !p.BossDefeated() {
		res.Reward = Reward(enc.Round, roll, enc.Boss.RewardMultiplier)
		res.Outcome = OutcomeBossVictory
		res.Boss = enc.Boss
		p.SetBossDefeated(true)
	}

	p.AddCoins(res.Reward)
	res.LivesLeft = p.Health()

	slog.Debug("victory",
		"round", enc.Round,
		"outcome", res.Outcome,
		"critical", res.Critical,
		"effectivePower", res.EffectivePower,
		"enemyPower", res.EnemyPower,
		"reward", res.Reward)
	*enc = r.rounds.NextRound(p)
}
