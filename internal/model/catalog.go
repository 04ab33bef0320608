package model

// BossEffect selects the pre-combat effect a boss applies when its round starts.
type BossEffect int

const (
	BossEffectNone BossEffect = iota
	BossEffectVampire // player power x0.7
	BossEffectTank    // enemy power x1.5
	BossEffectCurse   // player power x0.9
)

var bossEffectNames = map[BossEffect]string{
	BossEffectNone:    "none",
	BossEffectVampire: "vampire",
	BossEffectTank:    "tank",
	BossEffectCurse:   "curse",
}

func (e BossEffect) String() string {
	if name, ok := bossEffectNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseBossEffect resolves a boss effect by its name.
func ParseBossEffect(name string) (BossEffect, bool) {
	for e, n := range bossEffectNames {
		if n == name {
			return e, true
		}
	}
	return BossEffectNone, false
}

// BossDefinition is an immutable boss entry of the catalog.
type BossDefinition struct {
	Name             string
	Effect           BossEffect
	MessageKey       string
	RewardMultiplier float64
	Color            string
}

// ItemEffect selects what a shop item does when bought.
type ItemEffect int

const (
	EffectNone ItemEffect = iota
	EffectAddPower
	EffectMultiplyPower
	EffectAddCrit
	EffectTempBoost
	EffectHeal
	EffectFreezeEnemy
	EffectLuckyDuel
	EffectRandomBoost
	EffectPowerClones
	EffectBloodSacrifice
	EffectRewindTime
	EffectCritRoulette
)

var itemEffectNames = map[ItemEffect]string{
	EffectNone:           "none",
	EffectAddPower:       "add_power",
	EffectMultiplyPower:  "multiply_power",
	EffectAddCrit:        "add_crit",
	EffectTempBoost:      "temp_boost",
	EffectHeal:           "heal",
	EffectFreezeEnemy:    "freeze_enemy",
	EffectLuckyDuel:      "lucky_duel",
	EffectRandomBoost:    "random_boost",
	EffectPowerClones:    "power_clones",
	EffectBloodSacrifice: "blood_sacrifice",
	EffectRewindTime:     "rewind_time",
	EffectCritRoulette:   "crit_roulette",
}

func (e ItemEffect) String() string {
	if name, ok := itemEffectNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseItemEffect resolves an item effect by its name.
func ParseItemEffect(name string) (ItemEffect, bool) {
	for e, n := range itemEffectNames {
		if n == name {
			return e, true
		}
	}
	return EffectNone, false
}

// DefaultAmount is the parameter an effect uses when an item leaves Amount at zero.
func (e ItemEffect) DefaultAmount() float64 {
	switch e {
	case EffectAddPower:
		return 30
	case EffectMultiplyPower:
		return 1.5
	case EffectAddCrit:
		return 10
	case EffectTempBoost:
		return 2
	case EffectHeal:
		return 1
	case EffectFreezeEnemy:
		return 0.7
	default:
		return 0
	}
}

// ShopItem is an immutable shop entry of the catalog. Name is the identity key.
type ShopItem struct {
	Name       string
	Cost       int
	Effect     ItemEffect
	Amount     float64
	Consumable bool
}

// Param returns Amount, or the effect default when Amount is unset.
func (i ShopItem) Param() float64 {
	if i.Amount != 0 {
		return i.Amount
	}
	return i.Effect.DefaultAmount()
}
