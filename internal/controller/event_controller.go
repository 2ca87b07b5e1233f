package controller

import (
	"errors"
	"strconv"
	"time"

	"gathered_backend/internal/model"
	"gathered_backend/internal/service"
	"gathered_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	EventService *service.EventService
	GroupService *service.GroupService
}

func NewEventController(eventService *service.EventService, groupService *service.GroupService) *EventController {
	return &EventController{
		EventService: eventService,
		GroupService: groupService,
	}
}

type CreateEventRequest struct {
	GroupID     uint      `json:"groupId" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	EndsAt      time.Time `json:"endsAt"`
}

// CreateEvent godoc
// @Summary Create a group event
// @Tags events
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateEventRequest true "Event fields"
// @Success 201 {object} util.Response{data=model.Event}
// @Failure 400 {object} util.Response "starts in the past"
// @Failure 403 {object} util.Response "not a group member"
// @Router /api/events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	isMember, err := c.GroupService.IsMember(req.GroupID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !isMember {
		util.Forbidden(ctx)
		return
	}

	event := &model.Event{
		GroupID:     req.GroupID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}

	if err := c.EventService.CreateEvent(claims.UserID, event); err != nil {
		switch {
		case errors.Is(err, util.ErrEventInPast):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrGroupNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, event)
}

// ListGroupEvents godoc
// @Summary Events of a group
// @Tags events
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Group ID"
// @Param   upcoming query bool false "Only events that have not started yet"
// @Success 200 {object} util.Response{data=[]model.Event}
// @Router /api/groups/{id}/events [get]
func (c *EventController) ListGroupEvents(ctx *gin.Context) {
	groupID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid group id")
		return
	}

	upcomingOnly := ctx.DefaultQuery("upcoming", "true") == "true"
	events, err := c.EventService.ListGroupEvents(uint(groupID), upcomingOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, events)
}

// GetEvent godoc
// @Summary Event detail with RSVP counts
// @Tags events
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Event ID"
// @Success 200 {object} util.Response{data=service.EventDetail}
// @Failure 404 {object} util.Response
// @Router /api/events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}

	detail, err := c.EventService.GetEventDetail(ctx.Request.Context(), uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrEventNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}

type RSVPRequest struct {
	Status model.RSVPStatus `json:"status" binding:"required,oneof=going maybe declined"`
}

// RSVP godoc
// @Summary Reply to an event invitation
// @Tags events
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Event ID"
// @Param   body body RSVPRequest true "going, maybe or declined"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/events/{id}/rsvp [post]
func (c *EventController) RSVP(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}

	var req RSVPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.EventService.RSVP(uint(id), claims.UserID, req.Status); err != nil {
		if errors.Is(err, util.ErrEventNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
