package api

import (
	"time"

	"github.com/KPWithCode/gambit-mobile/internal/storage"
)

// BattleHandler groups all battle and matchmaking HTTP handlers.
type BattleHandler struct {
	repo             storage.Repository
	queueTimeout     time.Duration
	recentMovesLimit int
}

// NewBattleHandler creates a BattleHandler with the given repository,
// matchmaking timeout window and battle view move limit.
func NewBattleHandler(repo storage.Repository, queueTimeout time.Duration, recentMovesLimit int) *BattleHandler {
	return &BattleHandler{repo: repo, queueTimeout: queueTimeout, recentMovesLimit: recentMovesLimit}
}
