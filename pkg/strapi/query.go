package strapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Filter is a single Strapi filter clause, e.g. {"slug", "$eq", "x"}.
// Field may be a dotted path into a relation ("author.slug").
type Filter struct {
	Field string
	Op    string
	Value string
}

// Query builds the filter/population/sort/pagination parameters of a
// CMS request as a pure function of its fields. Encode output is
// deterministic, so it doubles as the cache key suffix: logically
// identical queries always produce the same string and logically
// different ones never collide.
type Query struct {
	Filters  []Filter
	Fields   []string
	Populate []string
	Sort     []string
	Page     int
	PageSize int
}

// Encode renders the query as a sorted URL query string.
func (q Query) Encode() string {
	values := url.Values{}

	for _, f := range q.Filters {
		key := "filters"
		for _, part := range strings.Split(f.Field, ".") {
			key += "[" + part + "]"
		}
		key += "[" + f.Op + "]"
		values.Set(key, f.Value)
	}

	for i, field := range q.Fields {
		values.Set(fmt.Sprintf("fields[%d]", i), field)
	}

	for i, field := range q.Populate {
		values.Set(fmt.Sprintf("populate[%d]", i), field)
	}

	for i, field := range q.Sort {
		values.Set(fmt.Sprintf("sort[%d]", i), field)
	}

	if q.Page > 0 {
		values.Set("pagination[page]", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pagination[pageSize]", strconv.Itoa(q.PageSize))
	}

	return values.Encode()
}
