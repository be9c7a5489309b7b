package search

import "strings"

// SearchQuery is one person lookup as submitted by the caller.
// Values are never mutated after construction.
type SearchQuery struct {
	Text       string  `json:"query"`
	Location   *string `json:"location,omitempty"`
	University *string `json:"university,omitempty"`
	Company    *string `json:"company,omitempty"`
}

// NewSearchQuery builds a query, dropping blank optional hints.
func NewSearchQuery(text, location, university, company string) SearchQuery {
	return SearchQuery{
		Text:       strings.TrimSpace(text),
		Location:   optional(location),
		University: optional(university),
		Company:    optional(company),
	}
}

// IsEmpty reports whether the query has no searchable text.
func (q SearchQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == ""
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
