package pkg

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edubridge/admingate/internal/domain"
)

// reservedParams lists query parameter names used for view control, not for
// categorical filtering.
var reservedParams = map[string]bool{
	"page":    true,
	"query":   true,
	"refresh": true,
}

// ParseViewRequest extracts the list-view parameters from query params:
// the free-text query, the requested page, the refresh flag, and every
// remaining parameter as a categorical filter value. Filter keys are matched
// against the resource's allowed fields downstream; unknown keys are simply
// ignored there.
func ParseViewRequest(c *gin.Context) domain.ViewRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	refresh := c.Query("refresh") == "true"

	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			filters[key] = values[0]
		}
	}

	return domain.ViewRequest{
		Query:   c.Query("query"),
		Filters: filters,
		Page:    page,
		Refresh: refresh,
	}
}
