package middleware

import (
	"strings"

	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/service"
	"unionhub/internal/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	ContextClaims = "claims"
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware rejects requests without a valid access token.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return authenticate(authService, true)
}

// OptionalAuth lets anonymous requests through but still rejects a malformed or
// invalid token.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return authenticate(authService, false)
}

func authenticate(authService service.AuthService, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				WriteError(c, apperrors.Unauthenticated("Authentication credentials were not provided."))
				c.Abort()
				return
			}
			c.Next()
			return
		}

		// "Bearer <token>" or "Token <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") {
			WriteError(c, apperrors.Unauthenticated("Invalid authorization header format."))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			WriteError(c, apperrors.Unauthenticated("Invalid or expired token."))
			c.Abort()
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// Authorize checks the role part of the permission table before the handler runs.
// Ownership is checked again by the service once the row is loaded.
func Authorize(res authz.Resource, act authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authz.AuthorizeRole(SubjectFrom(c), res, act); err != nil {
			WriteError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SubjectFrom returns the caller set by the auth middleware. Anonymous callers get a zero Subject.
func SubjectFrom(c *gin.Context) authz.Subject {
	return authz.Subject{UserID: c.GetString(ContextUserID), Role: c.GetString(ContextRole)}
}

// ClaimsFrom returns the validated token claims, or nil for anonymous requests.
func ClaimsFrom(c *gin.Context) *service.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.Claims)
	return claims
}
