package combat

import (
	"errors"

	"github.com/udisondev/numberwarrior/internal/model"
)

var (
	ErrPlayerDead  = errors.New("player has no lives left")
	ErrNoEncounter = errors.New("no active encounter")
)

// ValidateAttack checks that an attack may be resolved.
//
// Checks:
//   - Player alive
//   - A round has started (encounter round >= 1)
func ValidateAttack(p *model.Player, enc *model.Encounter) error {
	if p.IsDead() {
		return ErrPlayerDead
	}
	if enc == nil || enc.Round < 1 {
		return ErrNoEncounter
	}
	return nil
}
