package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/dto"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
	"github.com/Theternos/TaskFlow-sub001/pkg/apierrors"
)

type TagHandler struct {
	taskService ports.TaskService
}

func NewTagHandler(taskService ports.TaskService) *TagHandler {
	return &TagHandler{taskService: taskService}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.taskService.ListTags(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to list tags")
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) AddTag(c *gin.Context) {
	var req dto.AddTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	tags, err := h.taskService.AddTag(c.Request.Context(), req.Tag)
	if err != nil {
		respondServiceError(c, err, "failed to add tag")
		return
	}
	c.JSON(http.StatusCreated, tags)
}

func (h *TagHandler) RemoveTag(c *gin.Context) {
	tags, err := h.taskService.RemoveTag(c.Request.Context(), c.Param("value"))
	if err != nil {
		respondServiceError(c, err, "failed to remove tag")
		return
	}
	c.JSON(http.StatusOK, tags)
}
