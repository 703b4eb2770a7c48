package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// ParsePage reads page and limit query params. Values outside
// [1, maxLimit] are rejected rather than clamped.
func ParsePage(c *gin.Context, defaultLimit, maxLimit int) (Page, error) {
	p := Page{Page: 1, Limit: defaultLimit}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, BadRequest("page must be a positive integer")
		}
		p.Page = n
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			return p, BadRequest("limit must be between 1 and %d", maxLimit)
		}
		p.Limit = n
	}
	return p, nil
}

// ParseID reads a positive numeric path parameter.
func ParseID(c *gin.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, BadRequest("invalid %s", name)
	}
	return uint(n), nil
}
