package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	appErrors "pixshare/pkg/errors"
)

func TestRespondWithErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err        error
		wantStatus int
	}{
		{appErrors.ErrInvalidIdentifier, http.StatusBadRequest},
		{appErrors.ErrInvalidOrExpiredCode, http.StatusBadRequest},
		{appErrors.ErrPasswordMismatch, http.StatusBadRequest},
		{appErrors.ErrWeakPassword, http.StatusBadRequest},
		{appErrors.ErrInvalidName, http.StatusBadRequest},
		{appErrors.ErrInvalidUsername, http.StatusBadRequest},
		{appErrors.ErrParentMismatch, http.StatusBadRequest},
		{appErrors.ErrDuplicateIdentifier, http.StatusConflict},
		{appErrors.ErrCodeStillValid, http.StatusConflict},
		{appErrors.ErrAlreadyLiked, http.StatusConflict},
		{appErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{appErrors.ErrInvalidToken, http.StatusUnauthorized},
		{appErrors.ErrAccountNotVerified, http.StatusForbidden},
		{appErrors.ErrNotPostAuthor, http.StatusForbidden},
		{appErrors.ErrAccountNotFound, http.StatusNotFound},
		{appErrors.ErrPostNotFound, http.StatusNotFound},
		{appErrors.ErrCommentNotFound, http.StatusNotFound},
		{appErrors.ErrLikeNotFound, http.StatusNotFound},
		{appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", nil), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondWithError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("respondWithError(%v) status = %d, want %d", tt.err, w.Code, tt.wantStatus)
			}
		})
	}
}
