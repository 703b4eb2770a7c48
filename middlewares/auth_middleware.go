package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/utils"
)

// AuthMiddleware turns a bearer token into the request's Identity. Requests
// without a usable token continue anonymously; the permission guard decides
// whether the operation needed one.
func AuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			utils.InfoLogger.WithField("path", c.Request.URL.Path).Debug("authorization header without bearer scheme")
			c.Next()
			return
		}
		attachIdentity(c, tokens, strings.TrimSpace(tokenString))
		c.Next()
	}
}

// WebSocketAuthMiddleware reads the token of a websocket handshake from the
// "token" query parameter, since browsers can't set headers on one. Other
// requests are not affected.
func WebSocketAuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !websocket.IsWebSocketUpgrade(c.Request) {
			c.Next()
			return
		}
		if _, ok := authz.IdentityFrom(c.Request.Context()); !ok {
			if token := c.Query("token"); token != "" {
				attachIdentity(c, tokens, token)
			}
		}
		c.Next()
	}
}

func attachIdentity(c *gin.Context, tokens *utils.TokenIssuer, tokenString string) {
	claims, err := tokens.Parse(tokenString)
	if err != nil {
		utils.InfoLogger.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		}).Debug("rejected token")
		return
	}

	identity := authz.Identity{
		UserID:      claims.UserID,
		Username:    claims.Username,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}
	c.Request = c.Request.WithContext(authz.WithIdentity(c.Request.Context(), identity))
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
}

// CurrentIdentity returns the identity attached by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (authz.Identity, bool) {
	return authz.IdentityFrom(c.Request.Context())
}
