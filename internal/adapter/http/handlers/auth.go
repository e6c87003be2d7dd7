package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/dto"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/middleware"
	"github.com/Theternos/TaskFlow-sub001/internal/app/auth"
	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/internal/core/ports"
	"github.com/Theternos/TaskFlow-sub001/pkg/apierrors"
)

type AuthHandler struct {
	taskService ports.TaskService
	secret      []byte
	clock       ports.Clock
}

func NewAuthHandler(taskService ports.TaskService, secret []byte, clock ports.Clock) *AuthHandler {
	return &AuthHandler{taskService: taskService, secret: secret, clock: clock}
}

func (h *AuthHandler) Login(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	user, err := h.taskService.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang))
			return
		}
		respondServiceError(c, err, "failed to look up user")
		return
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang))
		return
	}

	token, err := auth.GenerateToken(user, h.secret, h.clock.Now())
	if err != nil {
		zap.L().Error("failed to sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgStorageFailure, lang))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: user.Sanitized()})
}
