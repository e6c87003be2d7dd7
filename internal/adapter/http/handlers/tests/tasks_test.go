package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/dto"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/handlers"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/middleware"
	"github.com/Theternos/TaskFlow-sub001/internal/app/service"
	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
	"github.com/Theternos/TaskFlow-sub001/pkg/apierrors"
	"github.com/Theternos/TaskFlow-sub001/pkg/translator"
)

func newTaskRouter(serviceMock *taskServiceMock) (*gin.Engine, *handlers.TaskHandler) {
	handler := handlers.NewTaskHandler(serviceMock, service.NewPrioritizer(service.SystemClock{}))
	router := gin.New()
	router.Use(middleware.LanguageMiddleware())
	return router, handler
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, domain.CreateTaskInput{
		Title:      "T1",
		AssignedTo: "2",
		DueDate:    "2025-03-01",
		Priority:   domain.PriorityHigh,
	}).Return(ports.CreateTaskResult{
		Task: domain.Task{
			ID:         1,
			Title:      "T1",
			AssignedTo: "2",
			DueDate:    "2025-03-01",
			Priority:   domain.PriorityHigh,
			Status:     domain.TaskStatusPending,
		},
		Notified: true,
	}, nil).Once()

	router, handler := newTaskRouter(serviceMock)
	router.POST("/api/tasks", handler.CreateTask)

	// assignedTo arrives as a bare number and is normalized to a string.
	rec := doJSON(router, http.MethodPost, "/api/tasks",
		`{"title":"T1","assignedTo":2,"dueDate":"2025-03-01","priority":"High"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 1, got.Task.ID)
	require.Equal(t, "2", got.Task.AssignedTo)
	require.Equal(t, domain.TaskStatusPending, got.Task.Status)
	require.NotNil(t, got.Notified)
	require.True(t, *got.Notified)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router, handler := newTaskRouter(serviceMock)
	router.POST("/api/tasks", handler.CreateTask)

	rec := doJSON(router, http.MethodPost, "/api/tasks", `{"title":""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid task payload", got.ErrDetails.Message)
	serviceMock.AssertNotCalled(t, "CreateTask")
}

func TestTaskHandler_GetTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, 42).Return(nil, domain.ErrTaskNotFound).Once()

	router, handler := newTaskRouter(serviceMock)
	router.GET("/api/tasks/:id", handler.GetTask)

	rec := doJSON(router, http.MethodGet, "/api/tasks/42", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Task not found", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask_InvalidID(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router, handler := newTaskRouter(serviceMock)
	router.GET("/api/tasks/:id", handler.GetTask)

	rec := doJSON(router, http.MethodGet, "/api/tasks/abc", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid id", got.ErrDetails.Message)
}

func TestTaskHandler_SubmitWork_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("SubmitWork", mock.Anything, 1, mock.MatchedBy(func(input domain.UpdateTaskInput) bool {
		return input.CompletionDetails != nil && input.CompletionDetails.Notes == "done"
	})).Return(domain.Task{ID: 1, Status: domain.TaskStatusProgress}, nil).Once()

	router, handler := newTaskRouter(serviceMock)
	router.PUT("/api/tasks/:id", handler.SubmitWork)

	rec := doJSON(router, http.MethodPut, "/api/tasks/1", `{"completionDetails":{"notes":"done"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, domain.TaskStatusProgress, got.Status)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_SubmitWork_EmptyBodyRejected(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router, handler := newTaskRouter(serviceMock)
	router.PUT("/api/tasks/:id", handler.SubmitWork)

	rec := doJSON(router, http.MethodPut, "/api/tasks/1", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "SubmitWork")
}

func TestTaskHandler_RequestRework_ReportsNotificationOutcome(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("RequestRework", mock.Anything, 1, "needs detail", "2025-03-10", "1").
		Return(domain.Task{ID: 1, Status: domain.TaskStatusRework}, false, nil).Once()

	router, handler := newTaskRouter(serviceMock)
	router.PUT("/api/tasks/:id/rework", handler.RequestRework)

	rec := doJSON(router, http.MethodPut, "/api/tasks/1/rework",
		`{"comment":"needs detail","deadline":"2025-03-10","requestedBy":"1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, domain.TaskStatusRework, got.Task.Status)
	require.NotNil(t, got.Notified)
	require.False(t, *got.Notified)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask_StorageError(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, 1).Return(errors.New("disk failure")).Once()

	router, handler := newTaskRouter(serviceMock)
	router.DELETE("/api/tasks/:id", handler.DeleteTask)

	rec := doJSON(router, http.MethodDelete, "/api/tasks/1", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Storage failure", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_Prioritize_Advisory(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router, handler := newTaskRouter(serviceMock)
	router.POST("/api/tasks/prioritize", handler.Prioritize)

	rec := doJSON(router, http.MethodPost, "/api/tasks/prioritize",
		`{"tasks":[{"id":1,"title":"T1","assignedTo":"2","dueDate":"2030-01-01","status":"Pending"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []service.PrioritizedTask
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, 1, got[0].TaskID)
	require.NotEmpty(t, got[0].AISuggestedPriority)
}

func TestTaskHandler_ListUsers_Sanitized(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListUsers", mock.Anything).Return([]domain.User{
		{ID: 1, Username: "admin", Password: "hash", Role: domain.RoleAdmin, GoogleTokens: &domain.GoogleTokens{AccessToken: "tok"}},
	}, nil).Once()

	router, handler := newTaskRouter(serviceMock)
	router.GET("/api/users", handler.ListUsers)

	rec := doJSON(router, http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "hash")
	require.NotContains(t, rec.Body.String(), "tok")
	serviceMock.AssertExpectations(t)
}
