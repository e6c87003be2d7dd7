package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/handlers"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/middleware"
	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/pkg/apierrors"
)

func newTagRouter(serviceMock *taskServiceMock) (*gin.Engine, *handlers.TagHandler) {
	handler := handlers.NewTagHandler(serviceMock)
	router := gin.New()
	router.Use(middleware.LanguageMiddleware())
	return router, handler
}

func TestTagHandler_AddTag_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("AddTag", mock.Anything, "ui").Return([]string{"ui"}, nil).Once()

	router, handler := newTagRouter(serviceMock)
	router.POST("/api/tags", handler.AddTag)

	rec := doJSON(router, http.MethodPost, "/api/tags", `{"tag":"ui"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, []string{"ui"}, got)
	serviceMock.AssertExpectations(t)
}

func TestTagHandler_AddTag_DuplicateCaseInsensitive(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("AddTag", mock.Anything, "UI").Return(nil, domain.ErrTagExists).Once()

	router, handler := newTagRouter(serviceMock)
	router.POST("/api/tags", handler.AddTag)

	rec := doJSON(router, http.MethodPost, "/api/tags", `{"tag":"UI"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Tag already exists", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTagHandler_RemoveTag_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("RemoveTag", mock.Anything, "ghost").Return(nil, domain.ErrTagNotFound).Once()

	router, handler := newTagRouter(serviceMock)
	router.DELETE("/api/tags/:value", handler.RemoveTag)

	rec := doJSON(router, http.MethodDelete, "/api/tags/ghost", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}
