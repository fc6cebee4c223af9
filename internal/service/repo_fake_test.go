package service

import (
	"time"

	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/storage"
)

// fakeRepo is an in-memory storage.Repository shared by the service
// tests.
type fakeRepo struct {
	battles map[string]*game.Battle
	moves   []game.BattleMove
	effects []game.ActiveEffect
	traps   []game.SetTrap
	results []game.BattleResult
	queue   []*game.QueueEntry
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{battles: make(map[string]*game.Battle)}
}

func (f *fakeRepo) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) InTransaction(fn func(storage.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) CreateBattle(b *game.Battle) error {
	b.ID = f.id()
	f.battles[b.BattleID] = b
	return nil
}

func (f *fakeRepo) GetBattleByBattleID(battleID string) (*game.Battle, error) {
	return f.battles[battleID], nil
}

func (f *fakeRepo) UpdateBattle(b *game.Battle) error {
	f.battles[b.BattleID] = b
	return nil
}

func (f *fakeRepo) AppendMove(m *game.BattleMove) error {
	m.ID = f.id()
	f.moves = append(f.moves, *m)
	return nil
}

func (f *fakeRepo) GetRecentMoves(battleID string, limit int) ([]game.BattleMove, error) {
	var out []game.BattleMove
	for i := len(f.moves) - 1; i >= 0 && len(out) < limit; i-- {
		if f.moves[i].BattleID == battleID {
			out = append(out, f.moves[i])
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateEffect(e *game.ActiveEffect) error {
	e.ID = f.id()
	f.effects = append(f.effects, *e)
	return nil
}

func (f *fakeRepo) SaveEffect(e *game.ActiveEffect) error {
	for i := range f.effects {
		if f.effects[i].ID == e.ID {
			f.effects[i] = *e
			return nil
		}
	}
	f.effects = append(f.effects, *e)
	return nil
}

func (f *fakeRepo) GetPlayerEffects(battleID, playerID string) ([]game.ActiveEffect, error) {
	var out []game.ActiveEffect
	for _, e := range f.effects {
		if e.BattleID == battleID && e.PlayerID == playerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetActiveEffects(battleID string) ([]game.ActiveEffect, error) {
	var out []game.ActiveEffect
	for _, e := range f.effects {
		if e.BattleID == battleID && e.TurnsLeft > 0 {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateTrap(t *game.SetTrap) error {
	t.ID = f.id()
	f.traps = append(f.traps, *t)
	return nil
}

func (f *fakeRepo) SaveTrap(t *game.SetTrap) error {
	for i := range f.traps {
		if f.traps[i].ID == t.ID {
			f.traps[i] = *t
			return nil
		}
	}
	f.traps = append(f.traps, *t)
	return nil
}

func (f *fakeRepo) GetUntriggeredTraps(battleID string) ([]game.SetTrap, error) {
	var out []game.SetTrap
	for _, t := range f.traps {
		if t.BattleID == battleID && !t.Triggered {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOpposingUntriggeredTraps(battleID, playerID string) ([]game.SetTrap, error) {
	var out []game.SetTrap
	for _, t := range f.traps {
		if t.BattleID == battleID && t.PlayerID != playerID && !t.Triggered {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateResult(r *game.BattleResult) error {
	r.ID = f.id()
	f.results = append(f.results, *r)
	return nil
}

func (f *fakeRepo) GetUnsyncedResults() ([]game.BattleResult, error) {
	var out []game.BattleResult
	for _, r := range f.results {
		if !r.Synced {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkResultSynced(battleID string) error {
	for i := range f.results {
		if f.results[i].BattleID == battleID {
			f.results[i].Synced = true
		}
	}
	return nil
}

func (f *fakeRepo) GetQueueEntryByUser(userID string) (*game.QueueEntry, error) {
	for _, e := range f.queue {
		if e.UserID == userID {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) SaveQueueEntry(e *game.QueueEntry) error {
	if e.ID == 0 {
		e.ID = f.id()
		f.queue = append(f.queue, e)
		return nil
	}
	for i := range f.queue {
		if f.queue[i].ID == e.ID {
			f.queue[i] = e
			return nil
		}
	}
	f.queue = append(f.queue, e)
	return nil
}

func (f *fakeRepo) FindWaitingOpponent(sport, excludeUserID string, now time.Time) (*game.QueueEntry, error) {
	for _, e := range f.queue {
		if e.Status == game.QueueWaiting && e.Sport == sport && e.UserID != excludeUserID && e.ExpiresAt.After(now) {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ClaimQueueEntryForMatch(entryID uint, matchedWith, battleID string) (bool, error) {
	for _, e := range f.queue {
		if e.ID == entryID && e.Status == game.QueueWaiting {
			e.Status = game.QueueMatched
			e.MatchedWith = matchedWith
			e.BattleID = battleID
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) DeleteQueueEntryByUser(userID string) error {
	kept := f.queue[:0]
	for _, e := range f.queue {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	f.queue = kept
	return nil
}

func (f *fakeRepo) ExpireQueueEntries(now time.Time) (int64, error) {
	var n int64
	for _, e := range f.queue {
		if e.Status == game.QueueWaiting && e.ExpiresAt.Before(now) {
			e.Status = game.QueueExpired
			n++
		}
	}
	return n, nil
}
