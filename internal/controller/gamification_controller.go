package controller

import (
	"errors"
	"strconv"

	"gathered_backend/internal/service"
	"gathered_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	GamificationService *service.GamificationService
	BadgeService        *service.BadgeService
}

func NewGamificationController(gamificationService *service.GamificationService, badgeService *service.BadgeService) *GamificationController {
	return &GamificationController{
		GamificationService: gamificationService,
		BadgeService:        badgeService,
	}
}

type RecordActivityRequest struct {
	GroupID      uint   `json:"groupId" binding:"required"`
	ActivityType string `json:"activityType" binding:"required"`
}

// RecordActivity godoc
// @Summary Record an activity and fold it into the user's streak
// @Description The server clock decides the streak date; the response carries the new streak count, flame intensity, points and any badges earned.
// @Tags gamification
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body RecordActivityRequest true "Activity"
// @Success 200 {object} util.Response{data=service.ActivityResult}
// @Failure 400 {object} util.Response
// @Router /api/gamification/activity [post]
func (c *GamificationController) RecordActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RecordActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GamificationService.RecordActivity(ctx.Request.Context(), claims.UserID, req.GroupID, req.ActivityType)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// GetStreak godoc
// @Summary Streak record for the current user in one group
// @Tags gamification
// @Produce  json
// @Security ApiKeyAuth
// @Param   groupId path int true "Group ID"
// @Success 200 {object} util.Response{data=model.StreakRecord}
// @Router /api/gamification/streaks/{groupId} [get]
func (c *GamificationController) GetStreak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groupID, err := strconv.ParseUint(ctx.Param("groupId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid group id")
		return
	}

	record, err := c.GamificationService.GetStreak(claims.UserID, uint(groupID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, record)
}

// ListStreaks godoc
// @Summary All streak records for the current user
// @Tags gamification
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StreakRecord}
// @Router /api/gamification/streaks [get]
func (c *GamificationController) ListStreaks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	records, err := c.GamificationService.GetUserStreaks(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, records)
}

// GetLeaderboard godoc
// @Summary Unity-point leaderboard
// @Tags gamification
// @Produce  json
// @Param   limit query int false "Max entries, default 10"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/gamification/leaderboard [get]
func (c *GamificationController) GetLeaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	entries, err := c.GamificationService.GetLeaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// GetBadgeCatalog godoc
// @Summary All badges that can be earned
// @Tags gamification
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Badge}
// @Router /api/gamification/badges [get]
func (c *GamificationController) GetBadgeCatalog(ctx *gin.Context) {
	badges, err := c.BadgeService.GetCatalog()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, badges)
}

// GetMyBadges godoc
// @Summary Badges held by the current user
// @Tags gamification
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.UserBadge}
// @Router /api/gamification/badges/mine [get]
func (c *GamificationController) GetMyBadges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	badges, err := c.BadgeService.GetUserBadges(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, badges)
}
