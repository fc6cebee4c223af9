package engine

import (
	"math/rand"

	"github.com/KPWithCode/gambit-mobile/internal/game"
)

// randFloat is swappable so tests can force an outcome.
var randFloat = rand.Float64

// BoostTotals sums the per-stat bonuses of every effect that still has
// turns remaining. Effects at zero are inert and contribute nothing.
func BoostTotals(effects []game.ActiveEffect) game.StatBoosts {
	var total game.StatBoosts
	for i := range effects {
		if effects[i].TurnsLeft <= 0 {
			continue
		}
		b := effects[i].StatBoosts
		total.Offense += b.Offense
		total.Defense += b.Defense
		total.Speed += b.Speed
		total.ThreePoint += b.ThreePoint
	}
	return total
}

// SuccessChance computes the probability of the given action succeeding
// for a card under the supplied boosts. Three-point shots use the
// three-point stat, fast breaks raw speed (offense boosts do not help a
// sprint), post-ups the offense stat. Unrecognized actions fall back to
// a coin flip.
func SuccessChance(card *game.Card, action string, boosts game.StatBoosts) float64 {
	switch action {
	case game.ActionThreePoint:
		return float64(card.ThreePoint+boosts.ThreePoint) / 100.0
	case game.ActionFastBreak:
		return float64(card.Speed) / 100.0
	case game.ActionPostUp:
		return float64(card.Offense+boosts.Offense) / 100.0
	default:
		return 0.5
	}
}

// RollSuccess draws the Bernoulli outcome for the given chance.
func RollSuccess(chance float64) bool {
	return randFloat() < chance
}

// PointsForAction returns the points awarded when the action succeeds.
func PointsForAction(action string) int {
	switch action {
	case game.ActionThreePoint:
		return 3
	case game.ActionFastBreak, game.ActionPostUp:
		return 2
	default:
		return 0
	}
}
