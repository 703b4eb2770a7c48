package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/utils"
)

// PermissionGuard runs the authorization pipeline for the matched route.
// Unmatched requests are left to gin's 404 handling.
func PermissionGuard(registry *authz.Registry, pipeline *authz.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			c.Next()
			return
		}

		op := authz.OperationID(c.Request.Method, path)
		decl, declared := registry.Lookup(op)
		req := authz.Request{Operation: op, Declaration: decl, Declared: declared}
		if identity, ok := authz.IdentityFrom(c.Request.Context()); ok {
			req.Identity = &identity
		}

		if err := pipeline.Evaluate(c.Request.Context(), req); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
