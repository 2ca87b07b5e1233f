package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gathered_backend/internal/model"
	"gathered_backend/internal/service"
	"gathered_backend/internal/util"
	"gathered_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DevotionalController struct {
	DevotionalService *service.DevotionalService
	StorageService    *service.StorageService
}

func NewDevotionalController(devotionalService *service.DevotionalService, storageService *service.StorageService) *DevotionalController {
	return &DevotionalController{
		DevotionalService: devotionalService,
		StorageService:    storageService,
	}
}

// GetCurrentDevotional godoc
// @Summary Today's devotional
// @Tags devotionals
// @Produce  json
// @Success 200 {object} util.Response{data=model.Devotional}
// @Router /api/devotional [get]
func (c *DevotionalController) GetCurrentDevotional(ctx *gin.Context) {
	devotional, err := c.DevotionalService.GetCurrentDevotional()
	if err != nil || devotional == nil {
		util.Error(ctx, 404, "No devotional available")
		return
	}

	util.Success(ctx, devotional)
}

// ListDevotionals godoc
// @Summary All devotionals, including disabled ones
// @Tags devotionals
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Devotional}
// @Router /api/admin/devotionals [get]
func (c *DevotionalController) ListDevotionals(ctx *gin.Context) {
	devotionals, err := c.DevotionalService.GetAllDevotionals()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, devotionals)
}

type DevotionalRequest struct {
	Title     string `json:"title" binding:"required"`
	Passage   string `json:"passage" binding:"required"`
	Body      string `json:"body" binding:"required"`
	Author    string `json:"author"`
	IsEnabled *bool  `json:"isEnabled"`
}

// CreateDevotional godoc
// @Summary Add a devotional
// @Tags devotionals
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body DevotionalRequest true "Devotional fields"
// @Success 201 {object} util.Response{data=model.Devotional}
// @Router /api/admin/devotionals [post]
func (c *DevotionalController) CreateDevotional(ctx *gin.Context) {
	var req DevotionalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	devotional := &model.Devotional{
		Title:   req.Title,
		Passage: req.Passage,
		Body:    req.Body,
		Author:  req.Author,
	}
	if err := c.DevotionalService.CreateDevotional(devotional); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, devotional)
}

// UpdateDevotional godoc
// @Summary Edit a devotional
// @Tags devotionals
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Devotional ID"
// @Param   body body DevotionalRequest true "Devotional fields"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "would leave no enabled devotional"
// @Router /api/admin/devotionals/{id} [put]
func (c *DevotionalController) UpdateDevotional(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid devotional id")
		return
	}

	var req DevotionalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	isEnabled := true
	if req.IsEnabled != nil {
		isEnabled = *req.IsEnabled
	}

	if err := c.DevotionalService.UpdateDevotional(uint(id), req.Title, req.Passage, req.Body, isEnabled); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, nil)
}

// DeleteDevotional godoc
// @Summary Remove a devotional
// @Tags devotionals
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Devotional ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "would leave no enabled devotional"
// @Router /api/admin/devotionals/{id} [delete]
func (c *DevotionalController) DeleteDevotional(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid devotional id")
		return
	}

	if err := c.DevotionalService.DeleteDevotional(uint(id)); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, nil)
}

// UploadAudio godoc
// @Summary Attach a narration audio file to a devotional
// @Description The file is probed with ffprobe for its duration before being stored.
// @Tags devotionals
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Devotional ID"
// @Param   audio formData file true "Audio file (mp3, m4a, ogg or wav)"
// @Success 200 {object} util.Response{data=util.AudioInfo}
// @Router /api/admin/devotionals/{id}/audio [post]
func (c *DevotionalController) UploadAudio(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid devotional id")
		return
	}

	file, err := ctx.FormFile("audio")
	if err != nil {
		util.BadRequest(ctx, "audio file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".mp3", ".m4a", ".ogg", ".wav":
	default:
		util.BadRequest(ctx, "unsupported audio format")
		return
	}

	// ffprobe needs a path, so stage the upload on disk first.
	tempPath := filepath.Join(os.TempDir(), uuid.New().String()+ext)
	if err := ctx.SaveUploadedFile(file, tempPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tempPath)

	info, err := util.GetAudioInfo(tempPath)
	if err != nil {
		logger.Log.Warn("audio probe failed", zap.String("file", file.Filename), zap.Error(err))
		util.BadRequest(ctx, "could not read audio file")
		return
	}

	filename := fmt.Sprintf("devotionals/%d_%s%s", id, uuid.New().String(), ext)
	url, err := c.StorageService.UploadFile(ctx.Request.Context(), filename, tempPath, "audio/"+strings.TrimPrefix(ext, "."))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.DevotionalService.AttachAudio(uint(id), url, info.Duration); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, info)
}
