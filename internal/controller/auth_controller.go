package controller

import (
	"errors"

	"gathered_backend/internal/model"
	"gathered_backend/internal/service"
	"gathered_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService         *service.AuthService
	UserService         *service.UserService
	GamificationService *service.GamificationService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService, gamificationService *service.GamificationService) *AuthController {
	return &AuthController{
		AuthService:         authService,
		UserService:         userService,
		GamificationService: gamificationService,
	}
}

// RegisterRequest defines model for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account with the supplied information
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "Registration payload"
// @Success 201 {object} util.Response{data=object} "created"
// @Failure 400 {object} util.Response "invalid payload"
// @Failure 409 {object} util.Response "email already registered"
// @Failure 500 {object} util.Response "internal error"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Member,
	}

	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "email already registered")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in
// @Description Authenticates and returns a JWT; also arms the user's
// @Description scheduled nudge from their stored notification preference.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=object} "success"
// @Failure 400 {object} util.Response "invalid payload"
// @Failure 401 {object} util.Response "unauthorized"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	// Initial load of the cadence planner for this session.
	c.UserService.ArmNudgeOnLogin(user.ID)

	util.Success(ctx, gin.H{"token": token})
}

// GetProfile godoc
// @Summary Current user profile
// @Description Profile of the authenticated user, with streak summary
// @Tags auth
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "success"
// @Failure 401 {object} util.Response "unauthorized"
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	streaks, err := c.GamificationService.GetUserStreaks(user.ID)
	if err != nil {
		streaks = nil
	}

	best := 0
	for _, s := range streaks {
		if s.CurrentStreak > best {
			best = s.CurrentStreak
		}
	}

	profile := gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"avatar":      user.Avatar,
		"bio":         user.Bio,
		"role":        user.Role,
		"unityPoints": user.UnityPoints,
		"createdAt":   user.CreatedAt,
		"bestStreak":  best,
		"intensity":   service.FlameIntensityFor(best),
		"streaks":     streaks,
	}

	util.Success(ctx, profile)
}
