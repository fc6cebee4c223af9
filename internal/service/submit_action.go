package service

import (
	"errors"
	"fmt"

	"github.com/KPWithCode/gambit-mobile/internal/engine"
	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/storage"
)

var (
	ErrBattleNotFound = errors.New("battle not found")
	ErrBattleFinished = errors.New("battle already finished")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrCardNotFound   = errors.New("card not found in deck")
)

// ActionRequest is a player's in-turn move against the battle engine.
type ActionRequest struct {
	BattleID string
	PlayerID string
	Action   string
	CardID   string
	CardName string
	Position string
}

// ActionResult reports the resolved outcome of one action.
type ActionResult struct {
	ActionSuccess bool `json:"action_success"`
	PointsScored  int  `json:"points_scored"`
}

// SubmitAction resolves one in-turn action: it validates turn
// ownership, rolls the probabilistic outcome from card stats plus
// active effects, applies opposing traps, accumulates score, flips the
// turn, detects the terminal condition and appends the move log. The
// whole resolution runs in a single transaction so a racing duplicate
// never passes the turn check twice.
func SubmitAction(repo storage.Repository, req ActionRequest) (*ActionResult, error) {
	var result ActionResult

	err := repo.InTransaction(func(r storage.Repository) error {
		battle, err := r.GetBattleByBattleID(req.BattleID)
		if err != nil {
			return err
		}
		if battle == nil {
			return ErrBattleNotFound
		}
		if battle.Status != game.StatusInProgress {
			return ErrBattleFinished
		}
		if battle.CurrentTurn != req.PlayerID {
			return ErrNotYourTurn
		}

		card := battle.DeckOf(req.PlayerID).FindCard(req.CardID)
		if card == nil {
			return ErrCardNotFound
		}

		effects, err := r.GetPlayerEffects(req.BattleID, req.PlayerID)
		if err != nil {
			return err
		}
		boosts := engine.BoostTotals(effects)

		success := engine.RollSuccess(engine.SuccessChance(card, req.Action, boosts))
		points := 0
		if success {
			points = engine.PointsForAction(req.Action)
		}

		points, err = fireOpposingTraps(r, battle, req.PlayerID, success, points)
		if err != nil {
			return err
		}

		if req.PlayerID == battle.Player1ID {
			battle.Player1Score += points
		} else {
			battle.Player2Score += points
		}
		battle.CurrentTurn = battle.OpponentOf(req.PlayerID)

		if engine.ShouldFinish(battle.Player1Score, battle.Player2Score, battle.Quarter) {
			if err := finishBattle(r, battle); err != nil {
				return err
			}
		}

		description := fmt.Sprintf("%s missed the shot", req.CardName)
		if success {
			description = fmt.Sprintf("%s scored %d points!", req.CardName, points)
		}
		move := &game.BattleMove{
			BattleID:       req.BattleID,
			Quarter:        battle.Quarter,
			PlayerID:       req.PlayerID,
			PlayerUsername: battle.UsernameOf(req.PlayerID),
			Action:         req.Action,
			CardID:         req.CardID,
			CardName:       req.CardName,
			Success:        success,
			PointsScored:   points,
			Description:    description,
		}
		if err := r.AppendMove(move); err != nil {
			return err
		}

		// Burn one turn off every running effect owned by the actor.
		for i := range effects {
			if effects[i].TurnsLeft > 0 {
				effects[i].TurnsLeft--
				if err := r.SaveEffect(&effects[i]); err != nil {
					return err
				}
			}
		}

		if err := r.UpdateBattle(battle); err != nil {
			return err
		}

		result = ActionResult{ActionSuccess: success, PointsScored: points}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// fireOpposingTraps applies every untriggered opposing ON_ATTACK trap
// to a successful action. Each firing trap reduces the points, flips to
// triggered and appends its own log entry attributed to the trap's
// owner. All eligible traps fire; there is no early exit.
func fireOpposingTraps(r storage.Repository, battle *game.Battle, actingPlayer string, success bool, points int) (int, error) {
	traps, err := r.GetOpposingUntriggeredTraps(battle.BattleID, actingPlayer)
	if err != nil {
		return points, err
	}
	for i := range traps {
		trap := &traps[i]
		if trap.Trigger != game.TriggerOnAttack || !success {
			continue
		}
		points = engine.ApplyTrapReduction(points, trap)
		trap.Triggered = true
		if err := r.SaveTrap(trap); err != nil {
			return points, err
		}
		move := &game.BattleMove{
			BattleID:       battle.BattleID,
			Quarter:        battle.Quarter,
			PlayerID:       trap.PlayerID,
			PlayerUsername: battle.UsernameOf(trap.PlayerID),
			Action:         game.ActionTrapTriggered,
			CardID:         trap.CardID,
			CardName:       trap.CardName,
			Success:        true,
			PointsScored:   0,
			Description:    fmt.Sprintf("%s was triggered!", trap.CardName),
		}
		if err := r.AppendMove(move); err != nil {
			return points, err
		}
	}
	return points, nil
}
