package shop

import "github.com/udisondev/numberwarrior/internal/model"

const (
	duelWinChance     = 0.4
	duelPowerFactor   = 3
	sacrificePower    = 200
	rewindRounds      = 3
	rouletteLow       = 5
	rouletteHigh      = 95
	clonePowerFactor  = 1.5
	cloneEnemyFactor  = 1.2
	boostFlatPower    = 100
	boostPowerFactor  = 2
	boostCrit         = 25
	boostHeal         = 2
	randomBoostKinds  = 5
	keyBuySuccess     = "buy_success"
	keyFreeze         = "freeze_effect"
	keyDuelWin        = "duel_win"
	keyDuelLose       = "duel_lose"
	keyRandomBoost    = "random_effect"
	keyClones         = "clone_message"
	keySacrifice      = "sacrifice_success"
	keyRewind         = "rewind_message"
	keyRoulette       = "roulette_message"
)

// effectFunc applies an item's effect. It must not mutate anything when it
// returns an error.
type effectFunc func(e *Engine, p *model.Player, enc *model.Encounter, item model.ShopItem) (Note, error)

// effects dispatches an item effect kind to its state transition.
var effects = map[model.ItemEffect]effectFunc{
	model.EffectAddPower:       addPower,
	model.EffectMultiplyPower:  multiplyPower,
	model.EffectAddCrit:        addCrit,
	model.EffectTempBoost:      tempBoost,
	model.EffectHeal:           heal,
	model.EffectFreezeEnemy:    freezeEnemy,
	model.EffectLuckyDuel:      luckyDuel,
	model.EffectRandomBoost:    randomBoost,
	model.EffectPowerClones:    powerClones,
	model.EffectBloodSacrifice: bloodSacrifice,
	model.EffectRewindTime:     rewindTime,
	model.EffectCritRoulette:   critRoulette,
}

func success() Note { return Note{Key: keyBuySuccess} }

func addPower(_ *Engine, p *model.Player, _ *model.Encounter, item model.ShopItem) (Note, error) {
	p.AddPower(int(item.Param()))
	return success(), nil
}

func multiplyPower(_ *Engine, p *model.Player, _ *model.Encounter, item model.ShopItem) (Note, error) {
	p.ScalePower(item.Param())
	return success(), nil
}

func addCrit(_ *Engine, p *model.Player, _ *model.Encounter, item model.ShopItem) (Note, error) {
	p.AddCritChance(int(item.Param()))
	return success(), nil
}

// tempBoost lasts until the next round starts.
func tempBoost(_ *Engine, p *model.Player, _ *model.Encounter, item model.ShopItem) (Note, error) {
	p.SetTempBonus(item.Param())
	return success(), nil
}

func heal(_ *Engine, p *model.Player, _ *model.Encounter, item model.ShopItem) (Note, error) {
	p.Heal(int(item.Param()))
	return success(), nil
}

func freezeEnemy(_ *Engine, _ *model.Player, enc *model.Encounter, item model.ShopItem) (Note, error) {
	enc.ScaleEnemy(item.Param())
	return Note{Key: keyFreeze, Params: map[string]any{"power": enc.EnemyPower}}, nil
}

// luckyDuel may cost the last life; the session checks for game over.
func luckyDuel(e *Engine, p *model.Player, _ *model.Encounter, _ model.ShopItem) (Note, error) {
	if e.rng.Float64() < duelWinChance {
		p.ScalePower(duelPowerFactor)
		return Note{Key: keyDuelWin, Params: map[string]any{"power": p.Power()}}, nil
	}
	lives := p.LoseLife()
	return Note{Key: keyDuelLose, Params: map[string]any{"lives": lives}}, nil
}

// randomBoost picks one of five outcomes; the last one does nothing.
func randomBoost(e *Engine, p *model.Player, _ *model.Encounter, _ model.ShopItem) (Note, error) {
	choice := e.rng.IntRange(0, randomBoostKinds-1)
	switch choice {
	case 0:
		p.AddPower(boostFlatPower)
	case 1:
		p.ScalePower(boostPowerFactor)
	case 2:
		p.AddCritChance(boostCrit)
	case 3:
		p.Heal(boostHeal)
	}
	return Note{Key: keyRandomBoost, Params: map[string]any{"choice": choice}}, nil
}

func powerClones(_ *Engine, p *model.Player, enc *model.Encounter, _ model.ShopItem) (Note, error) {
	p.ScalePower(clonePowerFactor)
	enc.ScaleEnemy(cloneEnemyFactor)
	return Note{Key: keyClones}, nil
}

func bloodSacrifice(_ *Engine, p *model.Player, _ *model.Encounter, _ model.ShopItem) (Note, error) {
	if p.Health() <= 1 {
		return Note{}, ErrInvalidSacrifice
	}
	p.LoseLife()
	p.AddPower(sacrificePower)
	return Note{Key: keySacrifice, Params: map[string]any{"power": sacrificePower}}, nil
}

// rewindTime moves back up to three rounds and starts the round after that.
// On round 1 there is nothing to rewind.
func rewindTime(e *Engine, p *model.Player, enc *model.Encounter, _ model.ShopItem) (Note, error) {
	if p.Round() <= 1 {
		return success(), nil
	}
	p.RewindRounds(rewindRounds)
	*enc = e.rounds.NextRound(p)
	return Note{Key: keyRewind, Params: map[string]any{"round": enc.Round}}, nil
}

func critRoulette(e *Engine, p *model.Player, _ *model.Encounter, _ model.ShopItem) (Note, error) {
	p.SetCritChance(e.rng.IntRange(rouletteLow, rouletteHigh))
	return Note{Key: keyRoulette, Params: map[string]any{"chance": p.CritChance()}}, nil
}
