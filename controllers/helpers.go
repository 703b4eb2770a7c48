package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/utils"
)

// currentActor returns the caller's identity, answering 401 when there is
// none.
func currentActor(c *gin.Context) (authz.Identity, bool) {
	identity, ok := authz.IdentityFrom(c.Request.Context())
	if !ok {
		utils.RespondError(c, utils.Unauthorized("authentication required"))
	}
	return identity, ok
}

func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		utils.RespondError(c, utils.BadRequest("invalid request body: %v", err))
		return false
	}
	return true
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, v interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, v)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := utils.ParseID(c, name)
	if err != nil {
		utils.RespondError(c, err)
		return 0, false
	}
	return id, true
}

func queryBool(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, utils.BadRequest("%s must be a number", name)
	}
	return &v, nil
}

// queryList accepts repeated and comma-separated values.
func queryList(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
