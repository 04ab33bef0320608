package model

import "time"

// RunRecord summarizes a finished run for the scoreboard.
type RunRecord struct {
	ID             int64     `json:"id,omitempty"`
	Rounds         int       `json:"rounds"`
	Coins          int       `json:"coins"`
	Power          int       `json:"power"`
	CritChance     int       `json:"crit_chance"`
	BossesDefeated int       `json:"bosses_defeated"`
	Language       string    `json:"language"`
	EndedAt        time.Time `json:"ended_at"`
}
