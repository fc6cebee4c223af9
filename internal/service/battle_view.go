package service

import (
	"github.com/KPWithCode/gambit-mobile/internal/dedupe"
	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/storage"
)

// PlayerView is one side of the composite battle view.
type PlayerView struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Deck     game.Deck `json:"deck"`
}

// BattleView is the composite read a battle screen subscribes to:
// battle state plus the most recent moves, running effects and armed
// traps.
type BattleView struct {
	BattleID      string              `json:"battle_id"`
	Player1       PlayerView          `json:"player1"`
	Player2       PlayerView          `json:"player2"`
	Player1Score  int                 `json:"player1_score"`
	Player2Score  int                 `json:"player2_score"`
	Quarter       int                 `json:"quarter"`
	CurrentTurn   string              `json:"current_turn"`
	Status        string              `json:"status"`
	RecentMoves   []game.BattleMove   `json:"recent_moves"`
	ActiveEffects []game.ActiveEffect `json:"active_effects"`
	SetTraps      []game.SetTrap      `json:"set_traps"`
}

// GetBattleView assembles the composite view: battle, newest N moves,
// effects with turns remaining and untriggered traps. Concurrent loads
// of the same battle are collapsed into one.
func GetBattleView(repo storage.Repository, battleID string, movesLimit int) (*BattleView, error) {
	v, err, _ := dedupe.BattleViewGroup.Do(battleID, func() (interface{}, error) {
		return loadBattleView(repo, battleID, movesLimit)
	})
	if err != nil {
		return nil, err
	}
	return v.(*BattleView), nil
}

func loadBattleView(repo storage.Repository, battleID string, movesLimit int) (*BattleView, error) {
	battle, err := repo.GetBattleByBattleID(battleID)
	if err != nil {
		return nil, err
	}
	if battle == nil {
		return nil, ErrBattleNotFound
	}

	moves, err := repo.GetRecentMoves(battleID, movesLimit)
	if err != nil {
		return nil, err
	}
	effects, err := repo.GetActiveEffects(battleID)
	if err != nil {
		return nil, err
	}
	traps, err := repo.GetUntriggeredTraps(battleID)
	if err != nil {
		return nil, err
	}

	return &BattleView{
		BattleID: battle.BattleID,
		Player1: PlayerView{
			UserID:   battle.Player1ID,
			Username: battle.Player1Username,
			Deck:     battle.Player1Deck,
		},
		Player2: PlayerView{
			UserID:   battle.Player2ID,
			Username: battle.Player2Username,
			Deck:     battle.Player2Deck,
		},
		Player1Score:  battle.Player1Score,
		Player2Score:  battle.Player2Score,
		Quarter:       battle.Quarter,
		CurrentTurn:   battle.CurrentTurn,
		Status:        battle.Status,
		RecentMoves:   moves,
		ActiveEffects: effects,
		SetTraps:      traps,
	}, nil
}
