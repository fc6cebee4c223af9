package engine

import "github.com/KPWithCode/gambit-mobile/internal/game"

// TrapPointReduction converts a trap's offense reduction into the
// points subtracted from an intercepted action: one point per full 10
// of offense reduction.
func TrapPointReduction(t *game.SetTrap) int {
	return t.Effect.StatReduction.Offense / 10
}

// ApplyTrapReduction subtracts the trap's penalty from the points an
// action scored, floored at zero.
func ApplyTrapReduction(points int, t *game.SetTrap) int {
	points -= TrapPointReduction(t)
	if points < 0 {
		return 0
	}
	return points
}
