package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pixshare/internal/logger"
	"pixshare/internal/middleware"
	appErrors "pixshare/pkg/errors"
	"pixshare/pkg/utils"
)

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrDuplicateIdentifier),
		errors.Is(err, appErrors.ErrCodeStillValid),
		errors.Is(err, appErrors.ErrAlreadyLiked):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrAccountNotVerified),
		errors.Is(err, appErrors.ErrNotPostAuthor):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrAccountNotFound),
		errors.Is(err, appErrors.ErrPostNotFound),
		errors.Is(err, appErrors.ErrCommentNotFound),
		errors.Is(err, appErrors.ErrLikeNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, appErrors.ErrInvalidIdentifier),
		errors.Is(err, appErrors.ErrInvalidOrExpiredCode),
		errors.Is(err, appErrors.ErrPasswordMismatch),
		errors.Is(err, appErrors.ErrWeakPassword),
		errors.Is(err, appErrors.ErrInvalidName),
		errors.Is(err, appErrors.ErrInvalidUsername),
		errors.Is(err, appErrors.ErrParentMismatch):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
