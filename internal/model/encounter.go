package model

// InitialEnemyPower is the enemy power shown before the first round starts.
const InitialEnemyPower = 50

// Encounter is the enemy the player faces in the current round.
type Encounter struct {
	Round      int
	EnemyPower int
	// Boss is non-nil iff the round is a boss round.
	Boss *BossDefinition
}

// IsBossRound reports whether a boss is present.
func (e *Encounter) IsBossRound() bool {
	return e != nil && e.Boss != nil
}

// ScaleEnemy multiplies enemy power by f and floors the result.
func (e *Encounter) ScaleEnemy(f float64) {
	e.EnemyPower = floorScale(e.EnemyPower, f)
}

// EncounterSnapshot is a read-only copy of an Encounter for presentation.
type EncounterSnapshot struct {
	Round       int    `json:"round"`
	EnemyPower  int    `json:"enemy_power"`
	IsBossRound bool   `json:"is_boss_round"`
	BossName    string `json:"boss_name,omitempty"`
	BossColor   string `json:"boss_color,omitempty"`
}

// Snapshot copies the current state.
func (e *Encounter) Snapshot() EncounterSnapshot {
	s := EncounterSnapshot{Round: e.Round, EnemyPower: e.EnemyPower}
	if e.Boss != nil {
		s.IsBossRound = true
		s.BossName = e.Boss.Name
		s.BossColor = e.Boss.Color
	}
	return s
}
