package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/littlelemon/models"
	"github.com/yeremiapane/littlelemon/utils"
)

// WebSocketAuthMiddleware authenticates socket upgrades. Browsers cannot set
// headers on a WebSocket, so the token may come as ?token=; other clients can
// use the usual Bearer header. With roles given, only those roles (and admins)
// get through.
func WebSocketAuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token missing"))
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil || claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid or expired token"))
			c.Abort()
			return
		}
		if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
			utils.RespondError(c, http.StatusForbidden, errors.New("the floor feed is for staff only"))
			c.Abort()
			return
		}

		c.Set(CtxRole, claims.Role)
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserName, claims.Name)
		c.Set(CtxToken, token)
		c.Next()
	}
}

func roleAllowed(role string, roles []string) bool {
	if role == models.RoleAdmin {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
