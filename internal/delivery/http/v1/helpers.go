package v1

import (
	"strconv"
	"strings"

	"hr-platform/internal/domain"
	"hr-platform/pkg/apperror"
	"hr-platform/pkg/validation"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive int64 path parameter.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.BadRequest("Invalid ID format")
	}
	return id, nil
}

// bindJSON decodes the request body into obj and checks its binding tags.
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperror.BadRequest("Invalid request body: " + validation.Message(err))
	}
	return nil
}

// queryInt returns the integer query value, or 0 when absent or malformed.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return v
}

// parseIDList splits a comma-separated list, drops entries that are not
// integers and removes duplicates.
func parseIDList(s string) []int64 {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		if v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64); err == nil {
			ids = append(ids, v)
		}
	}
	return domain.DedupeIDs(ids)
}

// parseList splits a comma-separated list and drops blank entries.
func parseList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
