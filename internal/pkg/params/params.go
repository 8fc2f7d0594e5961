// Package params parses path and query parameters shared across API handlers.
package params

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ID parses the ":id" path parameter. ok is false when it is missing or not a
// number.
func ID(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// OptionalID parses an optional numeric query value. Anything non-numeric,
// including empty, yields nil rather than an error.
func OptionalID(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &id
}

// Clamp parses a numeric query value and clamps it to [0, max]. A missing or
// non-numeric value yields def.
func Clamp(raw string, def, max int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
