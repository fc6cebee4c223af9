package service

import (
	"time"

	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/storage"
)

// Queue statuses reported to callers beyond the stored entry states.
const (
	QueueStatusUpdated    = "UPDATED"
	QueueStatusNotInQueue = "NOT_IN_QUEUE"
)

// JoinQueueRequest enrolls a player into the matchmaking pool for one
// game mode, carrying the deck snapshot a resulting battle will freeze.
type JoinQueueRequest struct {
	UserID   string
	Username string
	Sport    string
	Deck     game.Deck
}

// JoinQueueResult is what the joining caller learns synchronously. A
// WAITING status means the caller should watch its entry until it flips
// to MATCHED or EXPIRED.
type JoinQueueResult struct {
	QueueID          uint   `json:"queue_id"`
	Status           string `json:"status"`
	BattleID         string `json:"battle_id,omitempty"`
	OpponentUsername string `json:"opponent_username,omitempty"`
}

// JoinQueue enrolls the player and attempts an immediate pairing. A
// player already in the pool is overwritten in place (reset to WAITING
// with a fresh expiry) so a reconnect or retry never duplicates the
// entry. The enrollment, candidate scan, battle insert and both entry
// flips run in one transaction; the candidate flip is guarded so two
// near-simultaneous joiners cannot both win the same opponent.
func JoinQueue(repo storage.Repository, req JoinQueueRequest, timeout time.Duration) (*JoinQueueResult, error) {
	var result JoinQueueResult

	err := repo.InTransaction(func(r storage.Repository) error {
		now := time.Now()
		expiresAt := now.Add(timeout)

		existing, err := r.GetQueueEntryByUser(req.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Username = req.Username
			existing.Sport = req.Sport
			existing.Deck = req.Deck
			existing.Status = game.QueueWaiting
			existing.MatchedWith = ""
			existing.BattleID = ""
			existing.ExpiresAt = expiresAt
			if err := r.SaveQueueEntry(existing); err != nil {
				return err
			}
			result = JoinQueueResult{QueueID: existing.ID, Status: QueueStatusUpdated}
			return nil
		}

		entry := &game.QueueEntry{
			UserID:    req.UserID,
			Username:  req.Username,
			Sport:     req.Sport,
			Deck:      req.Deck,
			Status:    game.QueueWaiting,
			ExpiresAt: expiresAt,
		}
		if err := r.SaveQueueEntry(entry); err != nil {
			return err
		}

		opponent, err := r.FindWaitingOpponent(req.Sport, req.UserID, now)
		if err != nil {
			return err
		}
		if opponent == nil {
			result = JoinQueueResult{QueueID: entry.ID, Status: game.QueueWaiting}
			return nil
		}

		battleID := NewBattleID()
		claimed, err := r.ClaimQueueEntryForMatch(opponent.ID, req.UserID, battleID)
		if err != nil {
			return err
		}
		if !claimed {
			// Lost the candidate to a concurrent pairing; stay WAITING
			// for the next scan.
			result = JoinQueueResult{QueueID: entry.ID, Status: game.QueueWaiting}
			return nil
		}

		battle := &game.Battle{
			BattleID:        battleID,
			Player1ID:       req.UserID,
			Player2ID:       opponent.UserID,
			Player1Username: req.Username,
			Player2Username: opponent.Username,
			Player1Deck:     req.Deck,
			Player2Deck:     opponent.Deck,
			Quarter:         1,
			CurrentTurn:     req.UserID,
			Sport:           req.Sport,
			Status:          game.StatusInProgress,
		}
		if err := r.CreateBattle(battle); err != nil {
			return err
		}

		entry.Status = game.QueueMatched
		entry.MatchedWith = opponent.UserID
		entry.BattleID = battleID
		if err := r.SaveQueueEntry(entry); err != nil {
			return err
		}

		result = JoinQueueResult{
			QueueID:          entry.ID,
			Status:           game.QueueMatched,
			BattleID:         battleID,
			OpponentUsername: opponent.Username,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// QueueStatus is a pure read of a player's place in the pool.
type QueueStatus struct {
	Status      string     `json:"status"`
	BattleID    string     `json:"battle_id,omitempty"`
	MatchedWith string     `json:"matched_with,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// GetQueueStatus reports the entry's state without mutating it. A
// WAITING entry past its deadline is reported EXPIRED; the stored
// flip happens in MarkExpired or the periodic sweep.
func GetQueueStatus(repo storage.Repository, userID string) (*QueueStatus, error) {
	entry, err := repo.GetQueueEntryByUser(userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return &QueueStatus{Status: QueueStatusNotInQueue}, nil
	}

	status := entry.Status
	if entry.Status == game.QueueWaiting && entry.ExpiresAt.Before(time.Now()) {
		status = game.QueueExpired
	}
	expires := entry.ExpiresAt
	return &QueueStatus{
		Status:      status,
		BattleID:    entry.BattleID,
		MatchedWith: entry.MatchedWith,
		ExpiresAt:   &expires,
	}, nil
}

// MarkExpired flips a genuinely expired WAITING entry to EXPIRED. It is
// idempotent and the only per-player mutator of that transition.
func MarkExpired(repo storage.Repository, userID string) (string, error) {
	status := QueueStatusNotInQueue
	err := repo.InTransaction(func(r storage.Repository) error {
		entry, err := r.GetQueueEntryByUser(userID)
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		status = entry.Status
		if entry.Status == game.QueueWaiting && entry.ExpiresAt.Before(time.Now()) {
			entry.Status = game.QueueExpired
			if err := r.SaveQueueEntry(entry); err != nil {
				return err
			}
			status = game.QueueExpired
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// LeaveQueue removes the player's entry unconditionally.
func LeaveQueue(repo storage.Repository, userID string) error {
	return repo.DeleteQueueEntryByUser(userID)
}

// CleanupExpired sweeps every stale WAITING entry to EXPIRED and
// returns how many were flipped. It runs on a fixed interval.
func CleanupExpired(repo storage.Repository) (int64, error) {
	return repo.ExpireQueueEntries(time.Now())
}
