package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/storage"
)

// TrapRequest arms an interceptor that fires on a future opposing
// action.
type TrapRequest struct {
	BattleID string
	PlayerID string
	CardID   string
	CardName string
	Trigger  string
	Effect   game.TrapEffect
}

// SetTrap validates turn ownership, installs an untriggered trap scoped
// to the caster and logs the action. Arming a trap does not consume the
// turn.
func SetTrap(repo storage.Repository, req TrapRequest) error {
	return repo.InTransaction(func(r storage.Repository) error {
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

		trap := &game.SetTrap{
			BattleID:   req.BattleID,
			TrapID:     "trap_" + uuid.NewString(),
			CardID:     req.CardID,
			CardName:   req.CardName,
			PlayerID:   req.PlayerID,
			Trigger:    req.Trigger,
			Effect:     req.Effect,
			SetQuarter: battle.Quarter,
			Triggered:  false,
		}
		if err := r.CreateTrap(trap); err != nil {
			return err
		}

		move := &game.BattleMove{
			BattleID:       req.BattleID,
			Quarter:        battle.Quarter,
			PlayerID:       req.PlayerID,
			PlayerUsername: battle.UsernameOf(req.PlayerID),
			Action:         game.ActionTrapSet,
			CardID:         req.CardID,
			CardName:       req.CardName,
			Success:        true,
			PointsScored:   0,
			Description:    fmt.Sprintf("%s was set!", req.CardName),
		}
		return r.AppendMove(move)
	})
}
