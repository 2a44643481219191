// Package query turns raw list-request query parameters into a
// filter/sort/projection/pagination description. The parse is a pure
// transformation; it knows nothing about entities or storage.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Op is a filter comparison operator.
type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpGt  Op = "gt"
	OpLte Op = "lte"
	OpLt  Op = "lt"
)

const (
	DefaultPage  = 1
	DefaultLimit = 100
)

// reserved parameters never become filters
var reserved = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// Condition is a single field comparison.
type Condition struct {
	Field string
	Op    Op
	Value string
}

// SortKey orders results by a field; Desc when the request prefixed it with '-'.
type SortKey struct {
	Field string
	Desc  bool
}

// Options is the request-scoped resource query: constructed fresh per list
// request, never persisted.
type Options struct {
	Filters []Condition
	Sort    []SortKey
	Fields  []string
	Page    int
	Limit   int
}

// Offset is the row offset implied by page/limit.
func (o Options) Offset() int {
	return (o.Page - 1) * o.Limit
}

// Parse builds Options from raw query parameters. Every parameter except
// page/sort/limit/fields becomes a filter; range operators arrive as
// bracketed keys, e.g. price[gte]=500. A page beyond the available data is
// not an error, the store simply returns nothing.
func Parse(values url.Values) Options {
	opts := Options{Page: DefaultPage, Limit: DefaultLimit}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		field, op := splitKey(key)
		if reserved[field] {
			continue
		}
		for _, v := range vals {
			if v == "" {
				continue
			}
			opts.Filters = append(opts.Filters, Condition{Field: field, Op: op, Value: v})
		}
	}

	if s := values.Get("sort"); s != "" {
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if strings.HasPrefix(part, "-") {
				opts.Sort = append(opts.Sort, SortKey{Field: part[1:], Desc: true})
			} else {
				opts.Sort = append(opts.Sort, SortKey{Field: part})
			}
		}
	}

	if f := values.Get("fields"); f != "" {
		for _, part := range strings.Split(f, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				opts.Fields = append(opts.Fields, part)
			}
		}
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		opts.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		opts.Limit = l
	}

	return opts
}

// splitKey separates "price[gte]" into ("price", OpGte). Keys without a
// recognized operator suffix are plain equality filters.
func splitKey(key string) (string, Op) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, OpEq
	}
	field := key[:open]
	switch Op(key[open+1 : len(key)-1]) {
	case OpGte:
		return field, OpGte
	case OpGt:
		return field, OpGt
	case OpLte:
		return field, OpLte
	case OpLt:
		return field, OpLt
	default:
		return key, OpEq
	}
}
