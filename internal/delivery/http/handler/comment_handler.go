package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pixshare/internal/middleware"
	"pixshare/internal/usecase/content"
	"pixshare/pkg/utils"
)

type CommentHandler struct {
	service *content.Service
}

func NewCommentHandler(service *content.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	comments := router.Group("/posts/:post_id/comments")
	{
		comments.GET("", h.ListComments)
		comments.GET("/:comment_id", h.GetComment)
		comments.GET("/:comment_id/likes", h.ListCommentLikes)
	}
}

func (h *CommentHandler) RegisterWriteRoutes(router *gin.RouterGroup) {
	comments := router.Group("/posts/:post_id/comments")
	{
		comments.POST("", h.CreateComment)
		comments.POST("/:comment_id/likes", h.LikeComment)
		comments.DELETE("/:comment_id/likes", h.UnlikeComment)
	}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}

	viewerID := middleware.GetViewerID(c)

	resp, err := h.service.ListComments(c.Request.Context(), viewerID, postID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comments retrieved", resp)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(c, "comment_id")
	if !ok {
		return
	}

	viewerID := middleware.GetViewerID(c)

	resp, err := h.service.GetComment(c.Request.Context(), viewerID, postID, commentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment retrieved", resp)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}

	var req content.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.CreateComment(c.Request.Context(), userID, postID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Comment created", resp)
}

func (h *CommentHandler) LikeComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(c, "comment_id")
	if !ok {
		return
	}

	if err := h.service.LikeComment(c.Request.Context(), userID, postID, commentID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Comment liked", nil)
}

func (h *CommentHandler) UnlikeComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(c, "comment_id")
	if !ok {
		return
	}

	if err := h.service.UnlikeComment(c.Request.Context(), userID, postID, commentID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment unliked", nil)
}

func (h *CommentHandler) ListCommentLikes(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(c, "comment_id")
	if !ok {
		return
	}

	resp, err := h.service.ListCommentLikes(c.Request.Context(), postID, commentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment likes retrieved", resp)
}
