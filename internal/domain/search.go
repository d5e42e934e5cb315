package domain

import "strings"

type SearchKind string

const (
	SearchKindPhone SearchKind = "phone"
	SearchKindName  SearchKind = "name"
)

func ParseSearchKind(s string) (SearchKind, bool) {
	switch k := SearchKind(strings.ToLower(strings.TrimSpace(s))); k {
	case SearchKindPhone, SearchKindName:
		return k, true
	}
	return "", false
}

// ScoreSnapshot is the cached spam-likelihood view of a phone number.
// Never persisted; computed from the report ledger and cached with a TTL.
type ScoreSnapshot struct {
	PhoneNumber string  `json:"phone_number"`
	Likelihood  float64 `json:"spam_likelihood"` // [0,1]
	ReportCount int     `json:"report_count"`
}

// SearchResult is one entry of a resolved search. Name is nil for unknown
// numbers; Names carries the distinct contact-book names when several owners
// saved the same number. Email is a pointer so it is omitted entirely (not
// nulled) unless the privacy gate passes.
type SearchResult struct {
	PhoneNumber  string   `json:"phone_number"`
	Name         *string  `json:"name"`
	Names        []string `json:"names,omitempty"`
	Likelihood   float64  `json:"spam_likelihood"`
	ReportCount  int      `json:"report_count"`
	IsRegistered bool     `json:"is_registered"`
	Email        *string  `json:"email,omitempty"`
}

// SearchPage is a paginated slice of results plus navigation metadata.
type SearchPage struct {
	Count      int            `json:"count"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Next       *int           `json:"next"`
	Previous   *int           `json:"previous"`
	Results    []SearchResult `json:"results"`
}
