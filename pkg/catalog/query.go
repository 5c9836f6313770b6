package catalog

// Limits bounds page sizes. A MaxPerPage of 0 leaves per_page uncapped.
type Limits struct {
	DefaultPerPage int
	MaxPerPage     int
}

var DefaultLimits = Limits{DefaultPerPage: 12}

// Query is a product listing request. Zero values mean "not supplied".
type Query struct {
	Category string
	Search   string
	Page     int
	PerPage  int
}

// Normalize fills defaults: page below 1 becomes 1, a per-page below 1 the
// default, and a per-page above a configured maximum the maximum.
func (q Query) Normalize(l Limits) Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = l.DefaultPerPage
	}
	if l.MaxPerPage > 0 && q.PerPage > l.MaxPerPage {
		q.PerPage = l.MaxPerPage
	}
	return q
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// Pages is ceil(total/perPage), 0 for an empty result.
func Pages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	per := int64(perPage)
	return int((total + per - 1) / per)
}

type ProductPage struct {
	Products    []ProductView `json:"products"`
	Total       int64         `json:"total"`
	Pages       int           `json:"pages"`
	CurrentPage int           `json:"current_page"`
}
