// Package listing holds the shared page math and in-memory search
// re-filtering used by the admin list endpoints.
package listing

import "strings"

const (
	defaultLimit = 20
	maxLimit     = 100
)

// PageRequest is a normalized page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// NormalizePage clamps raw query values into a usable page request.
func NormalizePage(page, limit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset returns the skip count for the request.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the metadata block returned alongside every list page.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNext      bool `json:"hasNext"`
	HasPrev      bool `json:"hasPrev"`
}

// NewPagination computes page metadata for a total item count.
func NewPagination(totalItems int, req PageRequest) Pagination {
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + req.Limit - 1) / req.Limit
	}
	return Pagination{
		CurrentPage:  req.Page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: req.Limit,
		HasNext:      req.Page < totalPages,
		HasPrev:      req.Page > 1,
	}
}

// SlicePage cuts the requested page out of an already filtered result set.
func SlicePage[T any](items []T, req PageRequest) []T {
	start := req.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + req.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ContainsFold reports whether any candidate field contains the term,
// case-insensitively. Used as the defensive second pass over search
// results fetched with a database-level OR query.
func ContainsFold(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Filter keeps the elements for which keep returns true.
func Filter[T any](items []T, keep func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}
