package storage

import (
	"time"

	"github.com/KPWithCode/gambit-mobile/internal/game"
)

// Repository is the persistence boundary for battles, their aggregate
// records (moves, effects, traps, results) and the matchmaking pool.
//
// InTransaction runs fn against a repository bound to one database
// transaction. Every state-changing battle or pairing operation must go
// through it so an interrupted resolution never half-commits.
type Repository interface {
	InTransaction(fn func(Repository) error) error

	// Battles
	CreateBattle(b *game.Battle) error
	GetBattleByBattleID(battleID string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error

	// Move log (append-only)
	AppendMove(m *game.BattleMove) error
	GetRecentMoves(battleID string, limit int) ([]game.BattleMove, error)

	// Active effects
	CreateEffect(e *game.ActiveEffect) error
	SaveEffect(e *game.ActiveEffect) error
	GetPlayerEffects(battleID, playerID string) ([]game.ActiveEffect, error)
	// GetActiveEffects returns only effects with turns remaining.
	GetActiveEffects(battleID string) ([]game.ActiveEffect, error)

	// Traps
	CreateTrap(t *game.SetTrap) error
	SaveTrap(t *game.SetTrap) error
	GetUntriggeredTraps(battleID string) ([]game.SetTrap, error)
	GetOpposingUntriggeredTraps(battleID, playerID string) ([]game.SetTrap, error)

	// Result outbox
	CreateResult(r *game.BattleResult) error
	GetUnsyncedResults() ([]game.BattleResult, error)
	MarkResultSynced(battleID string) error

	// Matchmaking pool
	GetQueueEntryByUser(userID string) (*game.QueueEntry, error)
	SaveQueueEntry(e *game.QueueEntry) error
	// FindWaitingOpponent returns a WAITING entry for the same sport
	// belonging to another player whose expiry has not yet passed, or
	// nil when the pool has no candidate.
	FindWaitingOpponent(sport, excludeUserID string, now time.Time) (*game.QueueEntry, error)
	// ClaimQueueEntryForMatch flips the candidate to MATCHED only if it
	// is still WAITING and reports whether the claim won. A false
	// return means another pairing got there first.
	ClaimQueueEntryForMatch(entryID uint, matchedWith, battleID string) (bool, error)
	DeleteQueueEntryByUser(userID string) error
	// ExpireQueueEntries flips every WAITING entry past its deadline to
	// EXPIRED and returns how many were swept.
	ExpireQueueEntries(now time.Time) (int64, error)
}
