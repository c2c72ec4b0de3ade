package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ykaya/deptportal/internal/app/models/dto"
	"github.com/ykaya/deptportal/internal/app/services"
	"github.com/ykaya/deptportal/internal/middleware"
)

// LeaderboardController serves the engagement leaderboard
type LeaderboardController struct {
	leaderboardService services.LeaderboardService
}

// NewLeaderboardController creates a new LeaderboardController
func NewLeaderboardController(leaderboardService services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard returns the ranked leaderboard
// @Summary Get the engagement leaderboard
// @Description Ranks approved students by engagement score, descending. Ties keep registration order; the top three entries are highlighted.
// @Tags leaderboard
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.LeaderboardResponse} "Leaderboard retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	leaderboard, err := c.leaderboardService.BuildLeaderboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(leaderboard))
}
