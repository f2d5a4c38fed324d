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

type CollegeHandler struct {
	collegeService service.CollegeService
}

func NewCollegeHandler(collegeService service.CollegeService) *CollegeHandler {
	return &CollegeHandler{collegeService: collegeService}
}

// RegisterRoutes expects router to be /colleges.
func (h *CollegeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.List)
	router.POST("/", middleware.Authorize(authz.College, authz.Create), h.Create)
	router.GET("/stats/", h.Stats)
	router.GET("/:id/", h.Get)
	router.PUT("/:id/", middleware.Authorize(authz.College, authz.Update), h.Update)
	router.PATCH("/:id/", middleware.Authorize(authz.College, authz.Update), h.Patch)
	router.DELETE("/:id/", middleware.Authorize(authz.College, authz.Delete), h.Delete)

	router.GET("/:id/departments/", h.ListCollegeDepartments)
	router.POST("/:id/departments/", middleware.Authorize(authz.Department, authz.Create), h.CreateCollegeDepartment)

	departments := router.Group("/departments")
	{
		departments.GET("/", h.ListDepartments)
		departments.POST("/", middleware.Authorize(authz.Department, authz.Create), h.CreateDepartment)
		departments.GET("/:id/", h.GetDepartment)
		departments.PUT("/:id/", middleware.Authorize(authz.Department, authz.Update), h.UpdateDepartment)
		departments.PATCH("/:id/", middleware.Authorize(authz.Department, authz.Update), h.PatchDepartment)
		departments.DELETE("/:id/", middleware.Authorize(authz.Department, authz.Delete), h.DeleteDepartment)
	}
}

// GET /api/colleges/?search=&ordering=
func (h *CollegeHandler) List(c *gin.Context) {
	list, err := h.collegeService.ListColleges(c.Request.Context(), c.Query("search"), c.Query("ordering"))
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CollegeHandler) Create(c *gin.Context) {
	var req dto.CollegeRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.collegeService.CreateCollege(c.Request.Context(), middleware.SubjectFrom(c), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CollegeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.collegeService.GetCollege(c.Request.Context(), id)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollegeHandler) Update(c *gin.Context) { h.update(c, false) }

func (h *CollegeHandler) Patch(c *gin.Context) { h.update(c, true) }

func (h *CollegeHandler) update(c *gin.Context, partial bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CollegeRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.collegeService.UpdateCollege(c.Request.Context(), middleware.SubjectFrom(c), id, req, partial)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollegeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.collegeService.DeleteCollege(c.Request.Context(), middleware.SubjectFrom(c), id); err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/colleges/stats/
func (h *CollegeHandler) Stats(c *gin.Context) {
	resp, err := h.collegeService.Stats(c.Request.Context())
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/colleges/:id/departments/
func (h *CollegeHandler) ListCollegeDepartments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.listDepartments(c, &id)
}

// POST /api/colleges/:id/departments/ takes the college from the path.
func (h *CollegeHandler) CreateCollegeDepartment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}
	req.College = &id
	h.createDepartment(c, req)
}

// GET /api/colleges/departments/?college=&search=
func (h *CollegeHandler) ListDepartments(c *gin.Context) {
	h.listDepartments(c, queryInt64(c, "college"))
}

func (h *CollegeHandler) listDepartments(c *gin.Context, collegeID *int64) {
	list, err := h.collegeService.ListDepartments(c.Request.Context(), repository.DepartmentFilter{
		CollegeID: collegeID,
		Search:    strings.TrimSpace(c.Query("search")),
		Ordering:  c.Query("ordering"),
	})
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CollegeHandler) CreateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}
	h.createDepartment(c, req)
}

func (h *CollegeHandler) createDepartment(c *gin.Context, req dto.DepartmentRequest) {
	resp, err := h.collegeService.CreateDepartment(c.Request.Context(), middleware.SubjectFrom(c), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CollegeHandler) GetDepartment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.collegeService.GetDepartment(c.Request.Context(), id)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollegeHandler) UpdateDepartment(c *gin.Context) { h.updateDepartment(c, false) }

func (h *CollegeHandler) PatchDepartment(c *gin.Context) { h.updateDepartment(c, true) }

func (h *CollegeHandler) updateDepartment(c *gin.Context, partial bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.collegeService.UpdateDepartment(c.Request.Context(), middleware.SubjectFrom(c), id, req, partial)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollegeHandler) DeleteDepartment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.collegeService.DeleteDepartment(c.Request.Context(), middleware.SubjectFrom(c), id); err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
