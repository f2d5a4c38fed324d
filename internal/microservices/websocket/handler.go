package websocket

import (
	"context"
	"net/http"
	"strings"

	"unionhub/internal/microservices/http-api/service"
	"unionhub/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// TokenValidator is satisfied by service.AuthService.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*service.Claims, error)
}

// Handler upgrades an authenticated request to the notification stream.
// Browsers cannot set headers on the upgrade request, so the access token may
// also come from the "token" query parameter. An empty origins list allows any origin.
func Handler(hub *Hub, auth TokenValidator, origins []string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(origins),
	}

	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Authentication credentials were not provided."})
			return
		}
		claims, err := auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Invalid or expired token."})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// the upgrader has already replied
			logger.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}

		client := NewClient(claims.UserID, conn, hub)
		if !hub.enter(client) {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") {
		return ""
	}
	return parts[1]
}

func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return func(*http.Request) bool { return true }
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
