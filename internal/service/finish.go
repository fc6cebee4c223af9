package service

import (
	"time"

	"github.com/KPWithCode/gambit-mobile/internal/engine"
	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/storage"
)

// finishBattle moves a battle to FINISHED and records the terminal
// outcome in the result outbox. Callers reject actions against
// finished battles up front, so this runs at most once per battle and
// the outbox row is emitted exactly once.
func finishBattle(r storage.Repository, battle *game.Battle) error {
	battle.Status = game.StatusFinished

	winnerID, loserID := engine.Winner(battle)
	result := &game.BattleResult{
		BattleID:     battle.BattleID,
		WinnerID:     winnerID,
		LoserID:      loserID,
		Player1ID:    battle.Player1ID,
		Player2ID:    battle.Player2ID,
		Player1Score: battle.Player1Score,
		Player2Score: battle.Player2Score,
		Sport:        battle.Sport,
		FinishedAt:   time.Now(),
		Synced:       false,
	}
	return r.CreateResult(result)
}
