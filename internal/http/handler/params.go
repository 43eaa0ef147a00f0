package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"joywork.app/api/common/id"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	v, err := id.Parse(c.Param(name))
	if err != nil {
		badRequest(c, fmt.Errorf("%s: %w", name, err))
		return 0, false
	}
	return v, true
}

// optionalID parses a query value that may be absent.
func optionalID(c *gin.Context, name, raw string) (*int64, bool) {
	if raw == "" {
		return nil, true
	}
	v, err := id.Parse(raw)
	if err != nil {
		badRequest(c, fmt.Errorf("%s: %w", name, err))
		return nil, false
	}
	return &v, true
}
