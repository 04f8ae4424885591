package utils

import (
	"math"
	"strconv"
)

const (
	// DefaultPage is used when the page parameter is absent or unparsable
	DefaultPage = 1
	// DefaultPerPage is used when the per_page parameter is absent or unparsable
	DefaultPerPage = 20
	// MaxPerPage caps the page size
	MaxPerPage = 100
)

// PaginationParams holds sanitized pagination request parameters
type PaginationParams struct {
	Page    int
	PerPage int
}

// PaginationMeta is the wire-level pagination block attached to list responses.
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
	HasMore    bool  `json:"has_more"`
}

// ParsePaginationParams parses page and per_page query values, clamping
// page to >= 1 and per_page to [1, MaxPerPage]. Absent or unparsable values
// fall back to the defaults.
func ParsePaginationParams(pageStr, perPageStr string) PaginationParams {
	page := DefaultPage
	if v, err := strconv.Atoi(pageStr); err == nil {
		page = v
	}
	if page < 1 {
		page = DefaultPage
	}

	perPage := DefaultPerPage
	if v, err := strconv.Atoi(perPageStr); err == nil {
		perPage = v
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return PaginationParams{Page: page, PerPage: perPage}
}

// Offset returns the SQL offset for the current page
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// CalculatePagination builds pagination metadata. Total pages is ceiling
// division; has_more is true while the current page precedes the last one.
func CalculatePagination(total int64, page, perPage int) PaginationMeta {
	totalPages := 0
	if perPage > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(perPage)))
	}

	return PaginationMeta{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}
