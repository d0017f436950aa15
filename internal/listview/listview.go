// Package listview derives the visible page of a resource collection from
// the screen's query/filter/page state. The derivation is pure: the same
// inputs always produce the same page, and the input slice is never
// mutated.
package listview

import (
	"fmt"
	"strings"

	"github.com/edubridge/admingate/internal/domain"
	"github.com/edubridge/admingate/internal/resource"
)

// Spec fixes the per-resource view parameters.
type Spec struct {
	// SearchFields are the client-shape keys the free-text query matches
	// against, case-insensitively.
	SearchFields []string
	// PageSize is the fixed page size for the screen.
	PageSize int
}

// Apply filters items by the free-text query and the categorical filters,
// then paginates. An item matches when every searchable field test passes:
// the query is a case-insensitive substring of at least one search field,
// AND each non-wildcard filter equals the item's value for that field.
//
// Total pages is never below 1 and the requested page is clamped into
// range, so an out-of-range page shows the last page rather than an empty
// one.
func Apply[T any](items []T, query string, filters map[string]string, page int, spec Spec) domain.PageResult[T] {
	filtered := Filter(items, query, filters, spec.SearchFields)
	return Paginate(filtered, page, spec.PageSize)
}

// Filter returns the subset of items matching the query and filters.
func Filter[T any](items []T, query string, filters map[string]string, searchFields []string) []T {
	query = strings.ToLower(strings.TrimSpace(query))

	active := make(map[string]string, len(filters))
	for field, value := range filters {
		if value == "" || value == domain.FilterAll {
			continue
		}
		active[field] = value
	}

	if query == "" && len(active) == 0 {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		fields := resource.Fields(item)
		if !matchesQuery(fields, query, searchFields) {
			continue
		}
		if !matchesFilters(fields, active) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Paginate slices one page out of filtered. The page size must be positive.
func Paginate[T any](filtered []T, page, pageSize int) domain.PageResult[T] {
	n := len(filtered)

	totalPages := (n + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}

	items := make([]T, end-start)
	copy(items, filtered[start:end])

	return domain.PageResult[T]{
		Items:      items,
		Total:      n,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func matchesQuery(fields resource.Raw, query string, searchFields []string) bool {
	if query == "" {
		return true
	}
	for _, key := range searchFields {
		if s, ok := fields[key].(string); ok {
			if strings.Contains(strings.ToLower(s), query) {
				return true
			}
		}
	}
	return false
}

// matchesFilters requires exact equality for every active filter. Values are
// compared through their string form so boolean and numeric fields (active,
// rating) can be filtered with query-string values.
func matchesFilters(fields resource.Raw, active map[string]string) bool {
	for field, want := range active {
		got, ok := fields[field]
		if !ok {
			return false
		}
		if stringify(got) != want {
			return false
		}
	}
	return true
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
