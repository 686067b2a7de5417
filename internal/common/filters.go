package common

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Filters carries the listing parameters shared by the paginated read
// endpoints: page/limit for pagination, search for substring matching and
// category for exact filtering.
type Filters struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// ParseFilters builds Filters from raw query string values. Page and limit
// fall back to their defaults whenever the raw value is missing or not a
// positive integer; a garbage value must never fail the request.
func ParseFilters(page, limit, search, category string) Filters {
	return Filters{
		Page:     parsePositiveInt(page, DefaultPage),
		Limit:    parsePositiveInt(limit, DefaultLimit),
		Search:   search,
		Category: category,
	}
}

func parsePositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Skip returns the number of records to skip before the requested page.
func (f Filters) Skip() int {
	return (f.Page - 1) * f.Limit
}

// Metadata describes a page of results. Total counts every record matching
// the filter, not just the ones on the returned page.
type Metadata struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// CalculateMetadata computes the page arithmetic. Pages is zero when no
// records match.
func CalculateMetadata(total, page, limit int) Metadata {
	if total == 0 {
		return Metadata{Page: page}
	}

	return Metadata{
		Total: total,
		Page:  page,
		Pages: (total + limit - 1) / limit,
	}
}
