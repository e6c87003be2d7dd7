package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/middleware"
	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
	"github.com/Theternos/TaskFlow-sub001/pkg/apierrors"
)

// respondServiceError maps core errors onto the API error envelope.
// Anything outside the domain taxonomy is a storage-level failure.
func respondServiceError(c *gin.Context, err error, logMsg string) {
	lang := middleware.GetLang(c)

	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
	case errors.Is(err, domain.ErrTagNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTagNotFound, lang))
	case errors.Is(err, domain.ErrNoPendingRequest):
		c.JSON(http.StatusConflict, apierrors.CreateError(http.StatusConflict, apierrors.MsgNoPendingRequest, lang))
	case errors.Is(err, domain.ErrRequestPending):
		c.JSON(http.StatusConflict, apierrors.CreateError(http.StatusConflict, apierrors.MsgRequestPending, lang))
	case errors.Is(err, domain.ErrTagExists):
		c.JSON(http.StatusConflict, apierrors.CreateError(http.StatusConflict, apierrors.MsgTagExists, lang))
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang))
	default:
		zap.L().Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgStorageFailure, lang))
	}
}

func badRequest(c *gin.Context, msgKey string) {
	c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)))
}
