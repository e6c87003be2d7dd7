package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/dto"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/mapper"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/validation"
	"github.com/Theternos/TaskFlow-sub001/internal/app/service"
	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
	"github.com/Theternos/TaskFlow-sub001/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
	prioritizer *service.Prioritizer
}

func NewTaskHandler(taskService ports.TaskService, prioritizer *service.Prioritizer) *TaskHandler {
	return &TaskHandler{taskService: taskService, prioritizer: prioritizer}
}

func taskID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		badRequest(c, apierrors.MsgInvalidTaskID)
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to get task")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	result, err := h.taskService.CreateTask(c.Request.Context(), mapper.ToCreateTaskInput(req))
	if err != nil {
		respondServiceError(c, err, "failed to create task")
		return
	}

	notified := result.Notified
	c.JSON(http.StatusCreated, dto.TaskResponse{Task: result.Task, Notified: &notified})
}

func (h *TaskHandler) bindUpdate(c *gin.Context) (domain.UpdateTaskInput, bool) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return domain.UpdateTaskInput{}, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return domain.UpdateTaskInput{}, false
	}
	var req dto.UpdateTaskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return domain.UpdateTaskInput{}, false
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return domain.UpdateTaskInput{}, false
	}
	return input, true
}

// SubmitWork is the standard update path; it always lands the task on
// Progress.
func (h *TaskHandler) SubmitWork(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	input, ok := h.bindUpdate(c)
	if !ok {
		return
	}

	task, err := h.taskService.SubmitWork(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "failed to submit work")
		return
	}
	c.JSON(http.StatusOK, task)
}

// ReturnToPending is the v2 update path; same branching, but the task
// lands back on Pending and keeps its reference link.
func (h *TaskHandler) ReturnToPending(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	input, ok := h.bindUpdate(c)
	if !ok {
		return
	}

	task, err := h.taskService.ReturnToPending(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "failed to return task to pending")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) SubmitWorkWithFile(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var input domain.UpdateTaskInput
	if taskData := c.PostForm("taskData"); taskData != "" {
		var req dto.UpdateTaskRequest
		if err := json.Unmarshal([]byte(taskData), &req); err != nil {
			badRequest(c, apierrors.MsgInvalidTaskPayload)
			return
		}
		input = mapper.ToUpdateTaskInput(req)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}
	defer file.Close()

	task, err := h.taskService.SubmitWorkWithFile(c.Request.Context(), id, input, fileHeader.Filename, file)
	if err != nil {
		respondServiceError(c, err, "failed to submit work with file")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) MarkComplete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req dto.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.MarkComplete(c.Request.Context(), id, req.CompletedBy)
	if err != nil {
		respondServiceError(c, err, "failed to mark task complete")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) RequestRework(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req dto.ReworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, notified, err := h.taskService.RequestRework(c.Request.Context(), id, req.Comment, req.Deadline, req.RequestedBy)
	if err != nil {
		respondServiceError(c, err, "failed to request rework")
		return
	}
	c.JSON(http.StatusOK, dto.TaskResponse{Task: task, Notified: &notified})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *TaskHandler) ResetReminder(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	task, err := h.taskService.ResetReminder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to reset reminder flag")
		return
	}
	c.JSON(http.StatusOK, task)
}

// Prioritize scores the submitted tasks without touching the store.
func (h *TaskHandler) Prioritize(c *gin.Context) {
	var req dto.PrioritizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}
	c.JSON(http.StatusOK, h.prioritizer.PrioritizeTasks(req.Tasks, req.Users))
}

func (h *TaskHandler) ListUsers(c *gin.Context) {
	users, err := h.taskService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to list users")
		return
	}
	c.JSON(http.StatusOK, mapper.ToSanitizedUsers(users))
}
