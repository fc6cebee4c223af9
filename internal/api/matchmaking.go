package api

import (
	"net/http"

	"github.com/KPWithCode/gambit-mobile/internal/constants"
	"github.com/KPWithCode/gambit-mobile/internal/game"
	"github.com/KPWithCode/gambit-mobile/internal/logging"
	"github.com/KPWithCode/gambit-mobile/internal/service"

	"github.com/gin-gonic/gin"
)

type JoinQueueRequest struct {
	UserID   string    `json:"user_id" binding:"required"`
	Username string    `json:"username"`
	Sport    string    `json:"sport" binding:"required"`
	Deck     game.Deck `json:"deck"`
}

// JoinQueue enrolls a player and attempts an immediate pairing.
func (h *BattleHandler) JoinQueue(c *gin.Context) {
	var req JoinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	result, err := service.JoinQueue(h.repo, service.JoinQueueRequest{
		UserID:   req.UserID,
		Username: req.Username,
		Sport:    req.Sport,
		Deck:     req.Deck,
	}, h.queueTimeout)
	if err != nil {
		logging.Error("failed to join queue", err, logging.Fields{constants.LogFieldUserID: req.UserID, constants.LogFieldSport: req.Sport})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedJoinQueue})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetQueueStatus is a pure read of the caller's pool entry.
func (h *BattleHandler) GetQueueStatus(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerRequired})
		return
	}

	status, err := service.GetQueueStatus(h.repo, userID)
	if err != nil {
		logging.Error("failed to read queue status", err, logging.Fields{constants.LogFieldUserID: userID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedQueueStatus})
		return
	}

	c.JSON(http.StatusOK, status)
}

type queueUserRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// LeaveQueue removes the caller's entry unconditionally.
func (h *BattleHandler) LeaveQueue(c *gin.Context) {
	var req queueUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerRequired})
		return
	}

	if err := service.LeaveQueue(h.repo, req.UserID); err != nil {
		logging.Error("failed to leave queue", err, logging.Fields{constants.LogFieldUserID: req.UserID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedLeaveQueue})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkExpired flips the caller's WAITING entry to EXPIRED once its
// deadline has genuinely passed.
func (h *BattleHandler) MarkExpired(c *gin.Context) {
	var req queueUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerRequired})
		return
	}

	status, err := service.MarkExpired(h.repo, req.UserID)
	if err != nil {
		logging.Error("failed to expire queue entry", err, logging.Fields{constants.LogFieldUserID: req.UserID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedExpireQueue})
		return
	}

	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: status})
}

// CleanupExpired sweeps every stale WAITING entry. The same sweep runs
// on a scheduler; the endpoint exists for operational use.
func (h *BattleHandler) CleanupExpired(c *gin.Context) {
	cleaned, err := service.CleanupExpired(h.repo)
	if err != nil {
		logging.Error("queue cleanup failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCleanupQueue})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleaned": cleaned})
}
