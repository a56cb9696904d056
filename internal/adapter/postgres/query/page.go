package query

import (
	"math"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// Page is a normalized page request.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the number of rows skipped before this page, saturating at
// math.MaxInt instead of wrapping.
func (p Page) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Paging holds the page size bounds applied to requests.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPaging uses the domain defaults.
var DefaultPaging = Paging{DefaultLimit: domain.DefaultPageSize, MaxLimit: domain.MaxPageSize}

// Normalize clamps a raw page request: page below 1 becomes 1, limit below 1
// becomes the default and limit above the maximum becomes the maximum.
func (p Paging) Normalize(page, limit int) Page {
	def, hi := p.DefaultLimit, p.MaxLimit
	if def < 1 {
		def = domain.DefaultPageSize
	}
	if hi < def {
		hi = def
	}

	if page < 1 {
		page = 1
	}
	switch {
	case limit < 1:
		limit = def
	case limit > hi:
		limit = hi
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return Page{Page: page, Limit: limit}
}
