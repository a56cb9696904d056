package domain

import "time"

// Pagination defaults.
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// ListQuery contains filtering/pagination parameters for catalog listings.
type ListQuery struct {
	// Search performs a case-insensitive substring match over the entity's
	// text columns, combined with OR.
	Search string

	// Filters holds exact-match (or entity-declared substring) filters keyed by
	// API field name. Keys the entity does not declare are ignored.
	Filters map[string]string

	// Active restricts the listing to active (true) or inactive (false) rows.
	// Ignored for entities without an active flag.
	Active *bool

	// Page is 1-based. Values below 1 are treated as 1.
	Page int

	// Limit is the page size. Values below 1 fall back to DefaultPageSize.
	Limit int
}

// AuditQuery filters the audit trail.
type AuditQuery struct {
	Table    string
	Actor    string
	Kind     AuditKind
	RecordID string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

// Page is the paginated listing envelope returned by every read operation.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPage assembles a Page and derives TotalPages as ceil(total/limit).
func NewPage[T any](items []T, page, limit, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Page[T]{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
