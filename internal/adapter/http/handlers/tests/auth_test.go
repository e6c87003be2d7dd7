package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/dto"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/handlers"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/middleware"
	"github.com/Theternos/TaskFlow-sub001/internal/app/auth"
	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
)

type stubClock struct{ t time.Time }

func (c stubClock) Now() time.Time { return c.t }

var testSecret = []byte("test-secret")

func newAuthRouter(serviceMock *taskServiceMock) *gin.Engine {
	handler := handlers.NewAuthHandler(serviceMock, testSecret, stubClock{t: time.Now()})
	router := gin.New()
	router.Use(middleware.LanguageMiddleware())
	router.POST("/api/auth/login", handler.Login)
	return router
}

func TestAuthHandler_Login_Success(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	serviceMock := new(taskServiceMock)
	serviceMock.On("GetUserByUsername", mock.Anything, "admin").Return(domain.User{
		ID:       1,
		Username: "admin",
		Password: hash,
		Role:     domain.RoleAdmin,
	}, nil).Once()

	router := newAuthRouter(serviceMock)
	rec := doJSON(router, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"s3cret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotEmpty(t, got.Token)
	require.Empty(t, got.User.Password)

	claims, err := auth.ParseToken(got.Token, testSecret)
	require.NoError(t, err)
	require.Equal(t, 1, claims.UserID)
	require.Equal(t, domain.RoleAdmin, claims.Role)
	serviceMock.AssertExpectations(t)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	serviceMock := new(taskServiceMock)
	serviceMock.On("GetUserByUsername", mock.Anything, "admin").Return(domain.User{
		ID:       1,
		Username: "admin",
		Password: hash,
	}, nil).Once()

	router := newAuthRouter(serviceMock)
	rec := doJSON(router, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"nope"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetUserByUsername", mock.Anything, "ghost").
		Return(nil, domain.ErrUserNotFound).Once()

	router := newAuthRouter(serviceMock)
	rec := doJSON(router, http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"x"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestAuthMiddleware_ProtectsRoutes(t *testing.T) {
	router := gin.New()
	router.Use(middleware.LanguageMiddleware(), middleware.RequireAuth(testSecret))
	router.GET("/api/tasks", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": middleware.GetUserID(c)})
	})

	rec := doJSON(router, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := auth.GenerateToken(domain.User{ID: 5, Role: domain.RoleStaff}, testSecret, time.Now())
	require.NoError(t, err)

	req := authedRequest(http.MethodGet, "/api/tasks", token)
	rec = serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user_id":5`)
}

func TestAdminMiddleware_ForbidsStaff(t *testing.T) {
	router := gin.New()
	router.Use(middleware.LanguageMiddleware(), middleware.RequireAuth(testSecret), middleware.RequireAdmin())
	router.POST("/api/tasks", func(c *gin.Context) { c.Status(http.StatusCreated) })

	staffToken, err := auth.GenerateToken(domain.User{ID: 5, Role: domain.RoleStaff}, testSecret, time.Now())
	require.NoError(t, err)
	rec := serve(router, authedRequest(http.MethodPost, "/api/tasks", staffToken))
	require.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := auth.GenerateToken(domain.User{ID: 1, Role: domain.RoleAdmin}, testSecret, time.Now())
	require.NoError(t, err)
	rec = serve(router, authedRequest(http.MethodPost, "/api/tasks", adminToken))
	require.Equal(t, http.StatusCreated, rec.Code)
}
