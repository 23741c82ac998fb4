package api

import (
	"log/slog"
	"net/http"

	reqdto "goeat-api/internal/handler/dto/request"
	resdto "goeat-api/internal/handler/dto/response"
	"goeat-api/internal/handler/httperr"
	"goeat-api/internal/handler/middleware"
	"goeat-api/internal/usecase/commands"
	"goeat-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VideoHandler struct {
	cmds commands.VideoCommands
	q    queries.VideoQueries
}

func NewVideoHandler(cmds commands.VideoCommands, q queries.VideoQueries) *VideoHandler {
	return &VideoHandler{cmds: cmds, q: q}
}

// @Summary Upload video
// @Description Register a new video, optionally linked to a restaurant
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateVideoRequest true "Create video request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /videos [post]
func (h *VideoHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	var req reqdto.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Video feed
// @Description Paginated feed of videos, newest first; serving a page counts a view per video
// @Tags videos
// @Produce json
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} queries.VideoView
// @Failure 400 {object} map[string]string
// @Router /videos/feed [get]
func (h *VideoHandler) Feed(c *gin.Context) {
	viewerID, _ := middleware.GetUserID(c)
	limit := queries.ValidateLimit(queryInt(c, "limit", 0))

	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	items, next, err := h.q.Feed(c.Request.Context(), viewerID, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := gin.H{"videos": items}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)

	// A served page counts as one view per video. Best effort; the feed
	// response never fails on a counter miss.
	if len(items) > 0 {
		ids := make([]uuid.UUID, len(items))
		for i, v := range items {
			ids[i] = v.ID
		}
		if err := h.cmds.RegisterViews(c.Request.Context(), ids); err != nil {
			slog.Warn("failed to register feed views", "error", err)
		}
	}
}

// @Summary Get video
// @Description Get a video by ID
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} queries.VideoView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /videos/{id} [get]
func (h *VideoHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	viewerID, _ := middleware.GetUserID(c)

	view, err := h.q.GetByID(c.Request.Context(), id, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Toggle like
// @Description Like a video, or remove the like if it already exists
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} resdto.LikeResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /videos/{id}/like [post]
func (h *VideoHandler) ToggleLike(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	result, err := h.cmds.ToggleLike(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.LikeResponse{Liked: result.Liked})
}

// @Summary Add comment
// @Description Comment on a video
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param request body reqdto.AddCommentRequest true "Comment request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /videos/{id}/comments [post]
func (h *VideoHandler) AddComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	var req reqdto.AddCommentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}
	commentID, err := h.cmds.AddComment(c.Request.Context(), id, userID, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: commentID})
}

// @Summary Delete comment
// @Description Delete the caller's own comment; admins can delete any
// @Tags videos
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /videos/comments/{id} [delete]
func (h *VideoHandler) DeleteComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role, _ := middleware.GetUserRole(c)

	if err := h.cmds.DeleteComment(c.Request.Context(), id, userID, role.String()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List comments
// @Description List comments on a video, oldest first
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {array} queries.VideoCommentView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /videos/{id}/comments [get]
func (h *VideoHandler) ListComments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	items, err := h.q.ListComments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": items})
}

// @Summary Share video
// @Description Record a share of a video
// @Tags videos
// @Param id path string true "Video ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /videos/{id}/share [post]
func (h *VideoHandler) Share(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.Share(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
