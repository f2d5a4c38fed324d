package handler

import (
	"net/http"
	"strings"

	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/middleware"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type LeaderHandler struct {
	leaderService service.LeaderService
}

func NewLeaderHandler(leaderService service.LeaderService) *LeaderHandler {
	return &LeaderHandler{leaderService: leaderService}
}

// RegisterRoutes expects router to be /leaders.
func (h *LeaderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.List)
	router.POST("/", middleware.Authorize(authz.Leader, authz.Create), h.Create)
	router.GET("/stats/", h.Stats)
	router.GET("/positions/", h.Positions)
	router.GET("/:id/", h.Get)
	router.PUT("/:id/", middleware.Authorize(authz.Leader, authz.Update), h.Update)
	router.PATCH("/:id/", middleware.Authorize(authz.Leader, authz.Update), h.Patch)
	router.DELETE("/:id/", middleware.Authorize(authz.Leader, authz.Delete), h.Delete)
}

// GET /api/leaders/?department=&position=&college=&is_cabinet=&search=&ordering=
func (h *LeaderHandler) List(c *gin.Context) {
	list, err := h.leaderService.List(c.Request.Context(), repository.LeaderFilter{
		Department: strings.TrimSpace(c.Query("department")),
		Position:   strings.TrimSpace(c.Query("position")),
		CollegeID:  queryInt64(c, "college"),
		IsCabinet:  queryBool(c, "is_cabinet"),
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
	})
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *LeaderHandler) Create(c *gin.Context) {
	var req dto.LeaderRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.leaderService.Create(c.Request.Context(), middleware.SubjectFrom(c), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *LeaderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.leaderService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LeaderHandler) Update(c *gin.Context) { h.update(c, false) }

func (h *LeaderHandler) Patch(c *gin.Context) { h.update(c, true) }

func (h *LeaderHandler) update(c *gin.Context, partial bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.LeaderRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.leaderService.Update(c.Request.Context(), middleware.SubjectFrom(c), id, req, partial)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LeaderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.leaderService.Delete(c.Request.Context(), middleware.SubjectFrom(c), id); err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/leaders/stats/
func (h *LeaderHandler) Stats(c *gin.Context) {
	resp, err := h.leaderService.Stats(c.Request.Context())
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/leaders/positions/
func (h *LeaderHandler) Positions(c *gin.Context) {
	c.JSON(http.StatusOK, models.LeaderPositions)
}
