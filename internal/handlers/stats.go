package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openbounty/bounty-board-api/internal/dto"
	apierrors "github.com/openbounty/bounty-board-api/internal/errors"
	"github.com/openbounty/bounty-board-api/internal/middleware"
	"github.com/openbounty/bounty-board-api/internal/services"
)

// StatsHandler serves per-user stats and the community leaderboard.
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats returns earnings, created-bounty count and recent activity for
// the session user. Recomputed on every call.
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.statsService.GetUserStats(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsDTO(*stats))
}

// GetLeaderboard returns the aggregated per-user ranking. Public endpoint.
func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	board, err := h.statsService.GetLeaderboard(limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch leaderboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaderboardDTO(*board))
}
