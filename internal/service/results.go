package service

import (
	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/storage"
)

// GetUnsyncedResults lists terminal outcomes not yet propagated to the
// external system of record.
func GetUnsyncedResults(repo storage.Repository) ([]game.BattleResult, error) {
	return repo.GetUnsyncedResults()
}

// MarkResultSynced acknowledges a propagated result. Acknowledging an
// unknown battle id is a no-op, matching the pull/ack contract of the
// sync process.
func MarkResultSynced(repo storage.Repository, battleID string) error {
	return repo.MarkResultSynced(battleID)
}
