package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pixshare/internal/middleware"
	"pixshare/internal/usecase/content"
	"pixshare/pkg/utils"
)

type PostHandler struct {
	service *content.Service
}

func NewPostHandler(service *content.Service) *PostHandler {
	return &PostHandler{service: service}
}

// RegisterReadRoutes mounts the routes reachable without authentication.
func (h *PostHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	posts := router.Group("/posts")
	{
		posts.GET("", h.ListPosts)
		posts.GET("/:post_id", h.GetPost)
		posts.GET("/:post_id/likes", h.ListPostLikes)
	}
}

func (h *PostHandler) RegisterWriteRoutes(router *gin.RouterGroup) {
	posts := router.Group("/posts")
	{
		posts.POST("", h.CreatePost)
		posts.PUT("/:post_id", h.UpdatePost)
		posts.DELETE("/:post_id", h.DeletePost)
		posts.POST("/:post_id/likes", h.LikePost)
		posts.DELETE("/:post_id/likes", h.UnlikePost)
	}
}

// RegisterModerationRoutes mounts the admin-only moderation surface.
func (h *PostHandler) RegisterModerationRoutes(router *gin.RouterGroup) {
	router.DELETE("/posts/:post_id", h.RemovePost)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	viewerID := middleware.GetViewerID(c)

	resp, err := h.service.ListPosts(c.Request.Context(), viewerID, page, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Posts retrieved", resp)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}

	viewerID := middleware.GetViewerID(c)

	resp, err := h.service.GetPost(c.Request.Context(), viewerID, postID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Post retrieved", resp)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req content.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Post created", resp)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}

	var req content.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdatePost(c.Request.Context(), userID, postID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Post updated", resp)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), userID, postID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Post deleted", nil)
}

func (h *PostHandler) LikePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}

	if err := h.service.LikePost(c.Request.Context(), userID, postID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Post liked", nil)
}

func (h *PostHandler) UnlikePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}

	if err := h.service.UnlikePost(c.Request.Context(), userID, postID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Post unliked", nil)
}

func (h *PostHandler) ListPostLikes(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}

	resp, err := h.service.ListPostLikes(c.Request.Context(), postID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Post likes retrieved", resp)
}

// RemovePost deletes any post, bypassing the author check. Mounted behind
// the admin role gate.
func (h *PostHandler) RemovePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := parseUUIDParam(c, "post_id")
	if !ok {
		return
	}

	if err := h.service.RemovePost(c.Request.Context(), userID, postID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Post removed", nil)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
