package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/storage"
)

var ErrBattleExists = errors.New("battle already exists")

// DefaultSport is assumed when a caller does not name a game mode.
const DefaultSport = "basketball"

// CreateBattleRequest seeds a new battle. It is used for explicit
// creation, e.g. the synthetic-opponent fallback a client falls back to
// after its queue entry expires.
type CreateBattleRequest struct {
	BattleID        string
	Player1ID       string
	Player2ID       string
	Player1Username string
	Player2Username string
	Player1Deck     game.Deck
	Player2Deck     game.Deck
	Sport           string
}

// CreateBattle inserts a fresh battle: scores 0-0, first quarter,
// player1 to act. An empty battle id gets minted.
func CreateBattle(repo storage.Repository, req CreateBattleRequest) (*game.Battle, error) {
	battleID := req.BattleID
	if battleID == "" {
		battleID = NewBattleID()
	}
	sport := req.Sport
	if sport == "" {
		sport = DefaultSport
	}

	battle := &game.Battle{
		BattleID:        battleID,
		Player1ID:       req.Player1ID,
		Player2ID:       req.Player2ID,
		Player1Username: req.Player1Username,
		Player2Username: req.Player2Username,
		Player1Score:    0,
		Player2Score:    0,
		Player1Deck:     req.Player1Deck,
		Player2Deck:     req.Player2Deck,
		Quarter:         1,
		CurrentTurn:     req.Player1ID,
		Sport:           sport,
		Status:          game.StatusInProgress,
	}

	err := repo.InTransaction(func(r storage.Repository) error {
		existing, err := r.GetBattleByBattleID(battleID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrBattleExists
		}
		return r.CreateBattle(battle)
	})
	if err != nil {
		return nil, err
	}
	return battle, nil
}

// NewBattleID mints a globally unique battle identifier.
func NewBattleID() string {
	return "battle_" + uuid.NewString()
}
