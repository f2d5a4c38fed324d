package handler

import (
	"net/http"
	"strings"

	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/middleware"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes mounts categories and hashtags under the /announcements group.
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("/", h.List)
		categories.POST("/", middleware.Authorize(authz.Category, authz.Create), h.Create)
		categories.GET("/:id/", h.Get)
		categories.PUT("/:id/", middleware.Authorize(authz.Category, authz.Update), h.Update)
		categories.PATCH("/:id/", middleware.Authorize(authz.Category, authz.Update), h.Patch)
		categories.DELETE("/:id/", middleware.Authorize(authz.Category, authz.Delete), h.Delete)
	}
	router.GET("/hashtags/", h.ListHashtags)
}

// GET /api/announcements/categories/?search=&ordering=
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.categoryService.List(c.Request.Context(), repository.CategoryFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: c.Query("ordering"),
	})
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/announcements/categories/
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.categoryService.Create(c.Request.Context(), middleware.SubjectFrom(c), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GET /api/announcements/categories/:id/
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Update(c *gin.Context) { h.update(c, false) }

func (h *CategoryHandler) Patch(c *gin.Context) { h.update(c, true) }

func (h *CategoryHandler) update(c *gin.Context, partial bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.categoryService.Update(c.Request.Context(), middleware.SubjectFrom(c), id, req, partial)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/announcements/categories/:id/ deactivates the category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), middleware.SubjectFrom(c), id); err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/announcements/hashtags/?search=
func (h *CategoryHandler) ListHashtags(c *gin.Context) {
	list, err := h.categoryService.ListHashtags(c.Request.Context(), c.Query("search"), c.Query("ordering"))
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
