package data

import "github.com/udisondev/numberwarrior/internal/model"

// builtinBosses is the base boss roster, before mods.
var builtinBosses = []model.BossDefinition{
	{Name: "Vampire", Effect: model.BossEffectVampire, MessageKey: "vampire_effect", RewardMultiplier: 2, Color: "#FF0000"},
	{Name: "Tank", Effect: model.BossEffectTank, MessageKey: "shield_effect", RewardMultiplier: 1.5, Color: "#0000FF"},
	{Name: "Cursed", Effect: model.BossEffectCurse, MessageKey: "curse_effect", RewardMultiplier: 3, Color: "#800080"},
}

// builtinItems is the base shop, in display order.
var builtinItems = []model.ShopItem{
	{Name: "+30 Power", Cost: 50, Effect: model.EffectAddPower, Amount: 30},
	{Name: "x1.5 Power", Cost: 100, Effect: model.EffectMultiplyPower, Amount: 1.5},
	{Name: "+10% Crit", Cost: 120, Effect: model.EffectAddCrit, Amount: 10},
	{Name: "Temp Boost x2", Cost: 100, Effect: model.EffectTempBoost, Amount: 2},
	{Name: "Heal", Cost: 250, Effect: model.EffectHeal, Amount: 1},
	{Name: "Freeze Enemy", Cost: 300, Effect: model.EffectFreezeEnemy, Amount: 0.7},
	{Name: "Lucky Duel", Cost: 250, Effect: model.EffectLuckyDuel},
	{Name: "Random Boost", Cost: 150, Effect: model.EffectRandomBoost, Consumable: true},
	{Name: "Power Clones", Cost: 400, Effect: model.EffectPowerClones, Consumable: true},
	{Name: "Blood Sacrifice", Cost: 0, Effect: model.EffectBloodSacrifice, Consumable: true},
	{Name: "Rewind Time", Cost: 600, Effect: model.EffectRewindTime, Consumable: true},
	{Name: "Crit Roulette", Cost: 200, Effect: model.EffectCritRoulette, Consumable: true},
}
