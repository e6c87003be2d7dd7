package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/dto"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/middleware"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
	"github.com/Theternos/TaskFlow-sub001/pkg/apierrors"
)

// declinerName records who declined a request; the token only carries
// the user id, stored in the same string form task assignment uses.
func declinerName(c *gin.Context) string {
	if id := middleware.GetUserID(c); id > 0 {
		return strconv.Itoa(id)
	}
	return ""
}

// RequestHandler serves the extension and cancellation sub-flows.
type RequestHandler struct {
	taskService ports.TaskService
}

func NewRequestHandler(taskService ports.TaskService) *RequestHandler {
	return &RequestHandler{taskService: taskService}
}

func (h *RequestHandler) FileExtensionRequest(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req dto.ExtensionRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.FileExtensionRequest(c.Request.Context(), id, req.Reason, req.RequestedBy, nil)
	if err != nil {
		respondServiceError(c, err, "failed to file extension request")
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *RequestHandler) ApproveExtension(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req dto.ApproveExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.ApproveExtension(c.Request.Context(), id, req.ApprovedDueDate, req.ResponseComment)
	if err != nil {
		respondServiceError(c, err, "failed to approve extension")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *RequestHandler) DeclineExtension(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req dto.DeclineRequestBody
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Feedback) == "" {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.DeclineExtension(c.Request.Context(), id, req.Feedback, declinerName(c))
	if err != nil {
		respondServiceError(c, err, "failed to decline extension")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *RequestHandler) ListExtensionRequests(c *gin.Context) {
	tasks, err := h.taskService.ListExtensionRequests(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to list extension requests")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *RequestHandler) FileCancellationRequest(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req dto.CancellationRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.FileCancellationRequest(c.Request.Context(), id, req.Reason, req.RequestedBy, nil)
	if err != nil {
		respondServiceError(c, err, "failed to file cancellation request")
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *RequestHandler) ApproveCancellation(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	task, err := h.taskService.ApproveCancellation(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to approve cancellation")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *RequestHandler) DeclineCancellation(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req dto.DeclineRequestBody
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Feedback) == "" {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.DeclineCancellation(c.Request.Context(), id, req.Feedback)
	if err != nil {
		respondServiceError(c, err, "failed to decline cancellation")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *RequestHandler) ListCancellationRequests(c *gin.Context) {
	tasks, err := h.taskService.ListCancellationRequests(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to list cancellation requests")
		return
	}
	c.JSON(http.StatusOK, tasks)
}
