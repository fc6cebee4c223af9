package api

import (
	"net/http"

	"github.com/KPWithCode/gambit-mobile/internal/constants"
	"github.com/KPWithCode/gambit-mobile/internal/logging"
	"github.com/KPWithCode/gambit-mobile/internal/service"

	"github.com/gin-gonic/gin"
)

// ListUnsyncedResults returns terminal outcomes awaiting propagation to
// the external system of record.
func (h *BattleHandler) ListUnsyncedResults(c *gin.Context) {
	results, err := service.GetUnsyncedResults(h.repo)
	if err != nil {
		logging.Error("failed to fetch unsynced results", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchResults})
		return
	}

	c.JSON(http.StatusOK, results)
}

// MarkResultSynced acknowledges one propagated result.
func (h *BattleHandler) MarkResultSynced(c *gin.Context) {
	battleID := c.Param("battleID")
	if battleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}

	if err := service.MarkResultSynced(h.repo, battleID); err != nil {
		logging.Error("failed to mark result synced", err, logging.Fields{constants.LogFieldBattleID: battleID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSyncResult})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
