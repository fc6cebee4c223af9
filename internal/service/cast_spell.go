package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/storage"
)

// SpellRequest applies a spell card: instant points, a timed stat
// boost, or both.
type SpellRequest struct {
	BattleID      string
	PlayerID      string
	CardID        string
	CardName      string
	StatBoosts    game.StatBoosts
	Duration      string
	TurnsLeft     int
	InstantPoints int
}

// SpellResult reports the immediate score change of a cast.
type SpellResult struct {
	PointsScored int `json:"points_scored"`
}

// CastSpell validates turn ownership, credits instant points without a
// probability roll, installs a timed effect for non-instant durations
// and logs the cast. Casting does not consume the caster's turn.
func CastSpell(repo storage.Repository, req SpellRequest) (*SpellResult, error) {
	var result SpellResult

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

		points := 0
		if req.InstantPoints > 0 {
			points = req.InstantPoints
			if req.PlayerID == battle.Player1ID {
				battle.Player1Score += points
			} else {
				battle.Player2Score += points
			}
			if err := r.UpdateBattle(battle); err != nil {
				return err
			}
		}

		if req.Duration != game.DurationInstant {
			effect := &game.ActiveEffect{
				BattleID:       req.BattleID,
				EffectID:       "effect_" + uuid.NewString(),
				CardID:         req.CardID,
				CardName:       req.CardName,
				PlayerID:       req.PlayerID,
				TargetPlayer:   req.PlayerID,
				StatBoosts:     req.StatBoosts,
				Duration:       req.Duration,
				TurnsLeft:      req.TurnsLeft,
				CreatedQuarter: battle.Quarter,
			}
			if err := r.CreateEffect(effect); err != nil {
				return err
			}
		}

		move := &game.BattleMove{
			BattleID:       req.BattleID,
			Quarter:        battle.Quarter,
			PlayerID:       req.PlayerID,
			PlayerUsername: battle.UsernameOf(req.PlayerID),
			Action:         game.ActionSpellCast,
			CardID:         req.CardID,
			CardName:       req.CardName,
			Success:        true,
			PointsScored:   points,
			Description:    fmt.Sprintf("%s was cast!", req.CardName),
		}
		if err := r.AppendMove(move); err != nil {
			return err
		}

		result = SpellResult{PointsScored: points}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
