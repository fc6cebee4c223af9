package api

import (
	"net/http"

	"github.com/KPWithCode/gambit-mobile/internal/constants"
	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/logging"
	"github.com/KPWithCode/gambit-mobile/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateBattleRequest struct {
	BattleID        string    `json:"battle_id"`
	Player1ID       string    `json:"player1_id" binding:"required"`
	Player2ID       string    `json:"player2_id" binding:"required"`
	Player1Username string    `json:"player1_username"`
	Player2Username string    `json:"player2_username"`
	Player1Deck     game.Deck `json:"player1_deck"`
	Player2Deck     game.Deck `json:"player2_deck"`
	Sport           string    `json:"sport"`
}

// CreateBattle creates a battle explicitly, e.g. against a synthetic
// opponent after a matchmaking expiry.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	battle, err := service.CreateBattle(h.repo, service.CreateBattleRequest{
		BattleID:        req.BattleID,
		Player1ID:       req.Player1ID,
		Player2ID:       req.Player2ID,
		Player1Username: req.Player1Username,
		Player2Username: req.Player2Username,
		Player1Deck:     req.Player1Deck,
		Player2Deck:     req.Player2Deck,
		Sport:           req.Sport,
	})
	if err != nil {
		if err == service.ErrBattleExists {
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleExists})
			return
		}
		logging.Error("failed to create battle", err, logging.Fields{constants.LogFieldBattleID: req.BattleID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "battle_id": battle.BattleID})
}

// GetBattle returns the composite battle view: battle state, the most
// recent moves (newest first), running effects and armed traps.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	battleID := c.Param("battleID")
	if battleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}

	view, err := service.GetBattleView(h.repo, battleID, h.recentMovesLimit)
	if err != nil {
		if err == service.ErrBattleNotFound {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
			return
		}
		logging.Error("failed to load battle view", err, logging.Fields{constants.LogFieldBattleID: battleID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattle})
		return
	}

	c.JSON(http.StatusOK, view)
}
