package domain

// Status describes the lifecycle of a resource store's collection.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ViewRequest holds the list-view parameters a dashboard client sends:
// a free-text query, categorical filter fields, and the requested page.
// FilterAll is the wildcard value meaning "no constraint" for a filter field.
type ViewRequest struct {
	Query   string
	Filters map[string]string
	Page    int
	Refresh bool
}

// FilterAll is the wildcard filter value. A filter set to FilterAll (or left
// empty) does not constrain the result set.
const FilterAll = "All"

// PageResult is a filtered, paginated view of a resource collection.
type PageResult[T any] struct {
	Items      []T    `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
	Status     Status `json:"status"`
	Error      string `json:"error,omitempty"`
}
