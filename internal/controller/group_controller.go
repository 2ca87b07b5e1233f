package controller

import (
	"errors"
	"strconv"

	"gathered_backend/internal/model"
	"gathered_backend/internal/service"
	"gathered_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GroupController struct {
	GroupService *service.GroupService
}

func NewGroupController(groupService *service.GroupService) *GroupController {
	return &GroupController{GroupService: groupService}
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Focus       string `json:"focus"`
	IsPrivate   bool   `json:"isPrivate"`
}

// CreateGroup godoc
// @Summary Create a fellowship group
// @Tags groups
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateGroupRequest true "Group fields"
// @Success 201 {object} util.Response{data=model.Group}
// @Failure 400 {object} util.Response
// @Router /api/groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	group := &model.Group{
		Name:        req.Name,
		Description: req.Description,
		Focus:       req.Focus,
		IsPrivate:   req.IsPrivate,
	}

	if err := c.GroupService.CreateGroup(claims.UserID, group); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, group)
}

// ListGroups godoc
// @Summary List public groups
// @Tags groups
// @Produce  json
// @Param   page query int false "Page"
// @Param   limit query int false "Page size"
// @Param   focus query string false "Focus filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/groups [get]
func (c *GroupController) ListGroups(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	groups, total, err := c.GroupService.ListGroups(page, limit, ctx.Query("focus"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  groups,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetGroup godoc
// @Summary Group detail
// @Tags groups
// @Produce  json
// @Param   id path int true "Group ID"
// @Success 200 {object} util.Response{data=model.Group}
// @Failure 404 {object} util.Response
// @Router /api/groups/{id} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid group id")
		return
	}

	group, err := c.GroupService.GetGroup(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrGroupNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, group)
}

// MyGroups godoc
// @Summary Groups the current user belongs to
// @Tags groups
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Group}
// @Router /api/groups/mine [get]
func (c *GroupController) MyGroups(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groups, err := c.GroupService.ListUserGroups(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, groups)
}

// JoinGroup godoc
// @Summary Join a group
// @Tags groups
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Group ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "already a member"
// @Router /api/groups/{id}/join [post]
func (c *GroupController) JoinGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid group id")
		return
	}

	if err := c.GroupService.Join(uint(id), claims.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrGroupNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyMember):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// LeaveGroup godoc
// @Summary Leave a group
// @Tags groups
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Group ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/groups/{id}/leave [post]
func (c *GroupController) LeaveGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid group id")
		return
	}

	if err := c.GroupService.Leave(uint(id), claims.UserID); err != nil {
		if errors.Is(err, util.ErrNotMember) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// ListMembers godoc
// @Summary Group member list
// @Tags groups
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Group ID"
// @Success 200 {object} util.Response{data=[]model.GroupMembership}
// @Router /api/groups/{id}/members [get]
func (c *GroupController) ListMembers(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid group id")
		return
	}

	members, err := c.GroupService.ListMembers(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, members)
}
