package property

import "unilodge-backend/internal/models"

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Filters are the optional query parameters of the filter endpoint.
// City and Country are exact matches; Search is a case-insensitive substring
// matched against title, description, city and country (any field qualifies).
type Filters struct {
	Page     int
	Limit    int
	Country  string
	City     string
	MinPrice *float64
	MaxPrice *float64
	Search   string
}

func (f Filters) normalized() Filters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	return f
}

// Page is one bounded slice of matches plus the total match count.
type Page struct {
	Records []models.Property `json:"properties"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
}
