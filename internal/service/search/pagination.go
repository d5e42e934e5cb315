package search

import (
	"github.com/seu-repo/callguard/internal/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Paginate slices a result sequence into one page plus navigation metadata.
// An out-of-range page yields an empty page with valid metadata, not an
// error.
func Paginate(results []domain.SearchResult, page, pageSize int) *domain.SearchPage {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(results)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	p := &domain.SearchPage{
		Count:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
		Results:    results[start:end],
	}
	if p.Results == nil {
		p.Results = []domain.SearchResult{}
	}

	if end < total {
		next := page + 1
		p.Next = &next
	}
	if page > 1 {
		previous := page - 1
		p.Previous = &previous
	}

	return p
}
