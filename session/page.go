package session

import (
	"net/url"
	"strconv"
)

// Page is the paginated list envelope the backend wraps collection responses
// in.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext reports whether another page follows this one
func (p *Page[T]) HasNext() bool {
	return p != nil && p.Next != nil && *p.Next != ""
}

// ListParams are the query parameters shared by list endpoints
type ListParams struct {
	Page     int
	PageSize int
	Ordering string
	Search   string
}

// Values renders the params as url.Values so callers can merge their own
// filters in before encoding.
func (lp ListParams) Values() url.Values {
	values := url.Values{}
	if lp.Page > 0 {
		values.Set("page", strconv.Itoa(lp.Page))
	}
	if lp.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(lp.PageSize))
	}
	if lp.Ordering != "" {
		values.Set("ordering", lp.Ordering)
	}
	if lp.Search != "" {
		values.Set("search", lp.Search)
	}
	return values
}

// Encode renders the params as a query string, leading '?' included, or ""
// when nothing is set.
func (lp ListParams) Encode() string {
	return EncodeQuery(lp.Values())
}

// EncodeQuery renders values as a query string with a leading '?', or ""
// when empty.
func EncodeQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
