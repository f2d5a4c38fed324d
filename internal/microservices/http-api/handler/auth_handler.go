package handler

import (
	"errors"
	"net/http"

	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/middleware"
	"unionhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService    service.AuthService
	accountService service.AccountService
}

func NewAuthHandler(authService service.AuthService, accountService service.AccountService) *AuthHandler {
	return &AuthHandler{authService: authService, accountService: accountService}
}

// RegisterRoutes expects router to be /auth. limiter guards the credential endpoints.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, limiter gin.HandlerFunc) {
	router.POST("/register/", limiter, h.Register)
	router.POST("/login/", limiter, h.Login)
	router.POST("/token/refresh/", limiter, h.RefreshToken)
	router.POST("/logout/", middleware.Authorize(authz.Profile, authz.Read), h.Logout)

	router.GET("/profile/", middleware.Authorize(authz.Profile, authz.Read), h.Profile)
	router.PUT("/profile/", middleware.Authorize(authz.Profile, authz.Update), h.UpdateProfile)
	router.PATCH("/profile/", middleware.Authorize(authz.Profile, authz.Update), h.UpdateProfile)

	router.GET("/activities/", middleware.Authorize(authz.Activity, authz.List), h.ListActivities)
	router.POST("/activities/", middleware.Authorize(authz.Activity, authz.Create), h.RecordActivity)

	router.GET("/notifications/", middleware.Authorize(authz.Notification, authz.List), h.ListNotifications)
	router.POST("/notifications/read-all/", middleware.Authorize(authz.Notification, authz.Update), h.MarkAllNotificationsRead)
	router.POST("/notifications/:id/read/", middleware.Authorize(authz.Notification, authz.Update), h.MarkNotificationRead)
}

// POST /api/auth/register/
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// POST /api/auth/login/
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.authService.Login(c.Request.Context(), req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "Invalid credentials"})
		return
	}
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/auth/token/refresh/ rotates the refresh token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.authService.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/auth/logout/
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.ClaimsFrom(c)); err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Logged out"})
}

// GET /api/auth/profile/
func (h *AuthHandler) Profile(c *gin.Context) {
	resp, err := h.accountService.Profile(c.Request.Context(), middleware.SubjectFrom(c))
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PUT|PATCH /api/auth/profile/ are both partial.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.accountService.UpdateProfile(c.Request.Context(), middleware.SubjectFrom(c), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/auth/activities/
func (h *AuthHandler) ListActivities(c *gin.Context) {
	page, err := h.accountService.ListActivities(c.Request.Context(), middleware.SubjectFrom(c), pagination(c))
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// POST /api/auth/activities/
func (h *AuthHandler) RecordActivity(c *gin.Context) {
	var req dto.CreateActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.accountService.RecordActivity(c.Request.Context(), middleware.SubjectFrom(c), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GET /api/auth/notifications/
func (h *AuthHandler) ListNotifications(c *gin.Context) {
	page, err := h.accountService.ListNotifications(c.Request.Context(), middleware.SubjectFrom(c), pagination(c))
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// POST /api/auth/notifications/:id/read/
func (h *AuthHandler) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.accountService.MarkNotificationRead(c.Request.Context(), middleware.SubjectFrom(c), id); err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Notification marked as read"})
}

// POST /api/auth/notifications/read-all/
func (h *AuthHandler) MarkAllNotificationsRead(c *gin.Context) {
	n, err := h.accountService.MarkAllNotificationsRead(c.Request.Context(), middleware.SubjectFrom(c))
	if err != nil {
		middleware.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": n})
}
