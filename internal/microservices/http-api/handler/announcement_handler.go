package handler

import (
	"net/http"
	"strings"

	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/middleware"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/microservices/http-api/service"
	"unionhub/internal/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnnouncementHandler struct {
	announcementService service.AnnouncementService
	commentService      service.CommentService
	likeService         service.LikeService
}

func NewAnnouncementHandler(
	announcementService service.AnnouncementService,
	commentService service.CommentService,
	likeService service.LikeService,
) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		commentService:      commentService,
		likeService:         likeService,
	}
}

// RegisterRoutes mounts announcements, their comments, likes and pinning under router.
// router is expected to be /announcements.
func (h *AnnouncementHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.List)
	router.POST("/", middleware.Authorize(authz.Announcement, authz.Create), h.Create)
	router.GET("/stats/", h.Stats)

	router.GET("/:id/", h.Get)
	router.PUT("/:id/", middleware.Authorize(authz.Announcement, authz.Update), h.Update)
	router.PATCH("/:id/", middleware.Authorize(authz.Announcement, authz.Update), h.Patch)
	router.DELETE("/:id/", middleware.Authorize(authz.Announcement, authz.Delete), h.Delete)

	// both verbs toggle
	router.POST("/:id/like/", middleware.Authorize(authz.Like, authz.Toggle), h.ToggleLike)
	router.DELETE("/:id/like/", middleware.Authorize(authz.Like, authz.Toggle), h.ToggleLike)
	router.POST("/:id/pin/", middleware.Authorize(authz.Announcement, authz.Pin), h.TogglePin)

	router.GET("/:id/comments/", h.ListComments)
	router.POST("/:id/comments/", middleware.Authorize(authz.Comment, authz.Create), h.CreateComment)

	router.GET("/comments/:id/", h.GetComment)
	router.PUT("/comments/:id/", middleware.Authorize(authz.Comment, authz.Update), h.UpdateComment)
	router.PATCH("/comments/:id/", middleware.Authorize(authz.Comment, authz.Update), h.UpdateComment)
	router.DELETE("/comments/:id/", middleware.Authorize(authz.Comment, authz.Delete), h.DeleteComment)
}

// List returns published announcements.
// GET /api/announcements/?category=&author=&is_pinned=&hashtags=a,b&category_slug=&search=&ordering=&page=&page_size=
func (h *AnnouncementHandler) List(c *gin.Context) {
	f := repository.AnnouncementFilter{
		CategoryID:   queryInt64(c, "category"),
		AuthorID:     strings.TrimSpace(c.Query("author")),
		IsPinned:     queryBool(c, "is_pinned"),
		Hashtags:     queryList(c, "hashtags"),
		CategorySlug: strings.TrimSpace(c.Query("category_slug")),
		Search:       strings.TrimSpace(c.Query("search")),
		Ordering:     c.Query("ordering"),
		Pagination:   pagination(c),
	}
	if f.AuthorID != "" {
		if _, err := uuid.Parse(f.AuthorID); err != nil {
			middleware.WriteError(c, apperrors.Validation("author", "Must be a valid UUID."))
			return
		}
	}
	page, err := h.announcementService.List(c.Request.Context(), f)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// POST /api/announcements/
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.announcementService.Create(c.Request.Context(), middleware.SubjectFrom(c), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GET /api/announcements/:id/
func (h *AnnouncementHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.announcementService.Get(c.Request.Context(), middleware.SubjectFrom(c), id)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PUT /api/announcements/:id/
func (h *AnnouncementHandler) Update(c *gin.Context) {
	h.update(c, false)
}

// PATCH /api/announcements/:id/
func (h *AnnouncementHandler) Patch(c *gin.Context) {
	h.update(c, true)
}

func (h *AnnouncementHandler) update(c *gin.Context, partial bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.announcementService.Update(c.Request.Context(), middleware.SubjectFrom(c), id, req, partial)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/announcements/:id/
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.announcementService.Delete(c.Request.Context(), middleware.SubjectFrom(c), id); err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST|DELETE /api/announcements/:id/like/
func (h *AnnouncementHandler) ToggleLike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.likeService.Toggle(c.Request.Context(), middleware.SubjectFrom(c), id)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/announcements/:id/pin/
func (h *AnnouncementHandler) TogglePin(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.announcementService.TogglePin(c.Request.Context(), middleware.SubjectFrom(c), id)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/announcements/stats/
func (h *AnnouncementHandler) Stats(c *gin.Context) {
	resp, err := h.announcementService.Stats(c.Request.Context())
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/announcements/:id/comments/
func (h *AnnouncementHandler) ListComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, err := h.commentService.ListByAnnouncement(c.Request.Context(), id, pagination(c))
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// POST /api/announcements/:id/comments/
func (h *AnnouncementHandler) CreateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.commentService.Create(c.Request.Context(), middleware.SubjectFrom(c), id, req.Content)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GET /api/announcements/comments/:id/
func (h *AnnouncementHandler) GetComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.commentService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PUT|PATCH /api/announcements/comments/:id/
func (h *AnnouncementHandler) UpdateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.commentService.Update(c.Request.Context(), middleware.SubjectFrom(c), id, req.Content)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/announcements/comments/:id/
func (h *AnnouncementHandler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), middleware.SubjectFrom(c), id); err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
