package api

import (
	"net/http"

	"github.com/KPWithCode/gambit-mobile/internal/constants"
	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/logging"
	"github.com/KPWithCode/gambit-mobile/internal/service"

	"github.com/gin-gonic/gin"
)

type ActionRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
	CardID   string `json:"card_id" binding:"required"`
	CardName string `json:"card_name"`
	Position string `json:"position"`
}

// SubmitAction resolves one in-turn action for the acting player.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	battleID := c.Param("battleID")
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	result, err := service.SubmitAction(h.repo, service.ActionRequest{
		BattleID: battleID,
		PlayerID: req.PlayerID,
		Action:   req.Action,
		CardID:   req.CardID,
		CardName: req.CardName,
		Position: req.Position,
	})
	if err != nil {
		h.writeBattleError(c, battleID, err, constants.ErrFailedStoreAction)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"points_scored":  result.PointsScored,
		"action_success": result.ActionSuccess,
	})
}

type SpellRequest struct {
	PlayerID      string          `json:"player_id" binding:"required"`
	CardID        string          `json:"card_id" binding:"required"`
	CardName      string          `json:"card_name"`
	StatBoosts    game.StatBoosts `json:"stat_boosts"`
	Duration      string          `json:"duration"`
	TurnsLeft     int             `json:"turns_left"`
	InstantPoints int             `json:"instant_points"`
}

// CastSpell applies instant points and/or installs a timed effect.
func (h *BattleHandler) CastSpell(c *gin.Context) {
	battleID := c.Param("battleID")
	var req SpellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	result, err := service.CastSpell(h.repo, service.SpellRequest{
		BattleID:      battleID,
		PlayerID:      req.PlayerID,
		CardID:        req.CardID,
		CardName:      req.CardName,
		StatBoosts:    req.StatBoosts,
		Duration:      req.Duration,
		TurnsLeft:     req.TurnsLeft,
		InstantPoints: req.InstantPoints,
	})
	if err != nil {
		h.writeBattleError(c, battleID, err, constants.ErrFailedCastSpell)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "points_scored": result.PointsScored})
}

type TrapRequest struct {
	PlayerID string          `json:"player_id" binding:"required"`
	CardID   string          `json:"card_id" binding:"required"`
	CardName string          `json:"card_name"`
	Trigger  string          `json:"trigger"`
	Effect   game.TrapEffect `json:"effect"`
}

// SetTrap arms an interceptor for the calling player.
func (h *BattleHandler) SetTrap(c *gin.Context) {
	battleID := c.Param("battleID")
	var req TrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	err := service.SetTrap(h.repo, service.TrapRequest{
		BattleID: battleID,
		PlayerID: req.PlayerID,
		CardID:   req.CardID,
		CardName: req.CardName,
		Trigger:  req.Trigger,
		Effect:   req.Effect,
	})
	if err != nil {
		h.writeBattleError(c, battleID, err, constants.ErrFailedSetTrap)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// writeBattleError maps service sentinel errors to HTTP responses.
func (h *BattleHandler) writeBattleError(c *gin.Context, battleID string, err error, fallback string) {
	switch err {
	case service.ErrBattleNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case service.ErrBattleFinished:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFinished})
	case service.ErrNotYourTurn:
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
	case service.ErrCardNotFound:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCardNotFound})
	default:
		logging.Error("battle mutation failed", err, logging.Fields{constants.LogFieldBattleID: battleID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}
