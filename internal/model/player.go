package model

import (
	"math"
	"slices"
)

// Starting values for a fresh run.
const (
	DefaultPower      = 100
	DefaultCoins      = 0
	DefaultHealth     = 3
	DefaultCritChance = 15

	MaxCritChance = 100
)

// Stats seeds a new Player.
type Stats struct {
	Power      int
	Coins      int
	Health     int
	CritChance int
}

// DefaultStats returns the stats a new run starts with.
func DefaultStats() Stats {
	return Stats{
		Power:      DefaultPower,
		Coins:      DefaultCoins,
		Health:     DefaultHealth,
		CritChance: DefaultCritChance,
	}
}

// Player is the mutable progress of one run.
//
// A Player is owned by a single session and is not safe for concurrent use.
// All mutators keep the invariants: crit chance in [0,100], coins >= 0,
// power >= 0, round >= 1 once the first round started.
type Player struct {
	power      int
	coins      int
	health     int
	critChance int
	tempBonus  float64
	round      int

	// bossDefeated is reset when a boss round starts and set once its
	// reward multiplier has been paid.
	bossDefeated bool

	// owned holds consumable items already bought.
	owned map[string]struct{}
}

// NewPlayer creates a Player at round 0 with the given stats.
func NewPlayer(s Stats) *Player {
	p := &Player{
		power:     max(0, s.Power),
		coins:     max(0, s.Coins),
		health:    s.Health,
		tempBonus: 1.0,
		owned:     make(map[string]struct{}),
	}
	p.SetCritChance(s.CritChance)
	return p
}

func (p *Player) Power() int { return p.power }
func (p *Player) Coins() int { return p.coins }
func (p *Player) Health() int { return p.health }
func (p *Player) CritChance() int { return p.critChance }
func (p *Player) TempBonus() float64 { return p.tempBonus }
func (p *Player) Round() int { return p.round }
func (p *Player) BossDefeated() bool { return p.bossDefeated }
func (p *Player) IsDead() bool { return p.health <= 0 }
func (p *Player) SetBossDefeated(v bool) { p.bossDefeated = v }

// AddPower adds n to base power, never dropping below zero.
func (p *Player) AddPower(n int) {
	p.power = max(0, p.power+n)
}

// ScalePower multiplies base power by f and floors the result.
func (p *Player) ScalePower(f float64) {
	p.power = floorScale(p.power, f)
}

// EffectivePower is floor(power * tempBonus).
func (p *Player) EffectivePower() int {
	return floorScale(p.power, p.tempBonus)
}

// SetTempBonus sets the multiplier for the current round.
func (p *Player) SetTempBonus(f float64) {
	p.tempBonus = f
}

// AddCritChance adds n percentage points, clamped to [0,100].
func (p *Player) AddCritChance(n int) {
	p.SetCritChance(p.critChance + n)
}

// SetCritChance sets the crit chance, clamped to [0,100].
func (p *Player) SetCritChance(n int) {
	p.critChance = min(MaxCritChance, max(0, n))
}

// Heal adds n lives.
func (p *Player) Heal(n int) {
	p.health += n
}

// LoseLife removes one life and returns the lives left.
func (p *Player) LoseLife() int {
	p.health--
	return p.health
}

// AddCoins credits a reward.
func (p *Player) AddCoins(n int) {
	p.coins = max(0, p.coins+n)
}

// Spend debits cost coins. It reports false and leaves coins untouched
// when the wallet is short.
func (p *Player) Spend(cost int) bool {
	if cost < 0 || p.coins < cost {
		return false
	}
	p.coins -= cost
	return true
}

// StartRound increments the round counter and resets the temp bonus.
func (p *Player) StartRound() int {
	p.round++
	p.tempBonus = 1.0
	return p.round
}

// RewindRounds moves the round counter back by n, floored at 1.
func (p *Player) RewindRounds(n int) {
	p.round = max(1, p.round-n)
}

// Owns reports whether the consumable item was already bought.
func (p *Player) Owns(name string) bool {
	_, ok := p.owned[name]
	return ok
}

// MarkOwned records a bought consumable. The set only grows.
func (p *Player) MarkOwned(name string) {
	p.owned[name] = struct{}{}
}

// OwnedItems returns the bought consumables, sorted by name.
func (p *Player) OwnedItems() []string {
	out := make([]string, 0, len(p.owned))
	for name := range p.owned {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// PlayerSnapshot is a read-only copy of a Player for presentation.
type PlayerSnapshot struct {
	Power        int      `json:"power"`
	Coins        int      `json:"coins"`
	Health       int      `json:"health"`
	CritChance   int      `json:"crit_chance"`
	TempBonus    float64  `json:"temp_bonus"`
	Round        int      `json:"round"`
	BossDefeated bool     `json:"boss_defeated"`
	Owned        []string `json:"owned"`
}

// Snapshot copies the current state.
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Power:        p.power,
		Coins:        p.coins,
		Health:       p.health,
		CritChance:   p.critChance,
		TempBonus:    p.tempBonus,
		Round:        p.round,
		BossDefeated: p.bossDefeated,
		Owned:        p.OwnedItems(),
	}
}

func floorScale(v int, f float64) int {
	return max(0, int(math.Floor(float64(v)*f)))
}
