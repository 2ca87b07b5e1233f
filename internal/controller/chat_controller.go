package controller

import (
	"errors"
	"strconv"

	"gathered_backend/internal/service"
	"gathered_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
	Hub         *service.ChatHub
}

func NewChatController(chatService *service.ChatService, hub *service.ChatHub) *ChatController {
	return &ChatController{
		ChatService: chatService,
		Hub:         hub,
	}
}

// ListChannels godoc
// @Summary Chat channels for the current user's groups
// @Tags chat
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ChatChannel}
// @Router /api/chat/channels [get]
func (c *ChatController) ListChannels(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	channels, err := c.ChatService.ListChannels(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, channels)
}

// GetHistory godoc
// @Summary Message history of one group channel
// @Tags chat
// @Produce  json
// @Security ApiKeyAuth
// @Param   groupId path int true "Group ID"
// @Param   limit query int false "Max messages, default 50"
// @Param   before query int false "Return messages older than this message ID"
// @Success 200 {object} util.Response{data=[]model.ChatMessage}
// @Failure 403 {object} util.Response "not a group member"
// @Router /api/chat/{groupId}/messages [get]
func (c *ChatController) GetHistory(ctx *gin.Context) {
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

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	beforeID, _ := strconv.ParseUint(ctx.DefaultQuery("before", "0"), 10, 64)

	messages, err := c.ChatService.GetHistory(uint(groupID), claims.UserID, limit, uint(beforeID))
	if err != nil {
		if errors.Is(err, util.ErrNotMember) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, messages)
}

// Connect godoc
// @Summary Upgrade to the chat websocket
// @Description Pass the JWT as ?token= since browsers cannot set headers on websocket upgrades.
// @Tags chat
// @Security ApiKeyAuth
// @Success 101 {string} string "switching protocols"
// @Router /api/chat/ws [get]
func (c *ChatController) Connect(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	service.ServeWs(c.Hub, ctx.Writer, ctx.Request, claims.UserID)
}
