package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tourbook/pkg/query"
)

var testMeta = Meta{
	Table:    "tours",
	IDColumn: "id",
	Fields: map[string]Field{
		"id":         {Column: "id"},
		"name":       {Column: "name"},
		"price":      {Column: "price", Cast: "numeric"},
		"difficulty": {Column: "difficulty"},
	},
	Select:      []string{"id", "name", "price", "difficulty"},
	DefaultSort: "created_at DESC",
}

func TestBuildSelectDefaults(t *testing.T) {
	opts := query.Options{Page: 1, Limit: 100}

	sql, args := BuildSelect(testMeta, opts, nil)

	assert.Equal(t, "SELECT id, name, price, difficulty FROM tours ORDER BY created_at DESC LIMIT $1 OFFSET $2", sql)
	assert.Equal(t, []any{100, 0}, args)
}

func TestBuildSelectFiltersWithCast(t *testing.T) {
	opts := query.Options{
		Filters: []query.Condition{
			{Field: "price", Op: query.OpGte, Value: "500"},
			{Field: "difficulty", Op: query.OpEq, Value: "easy"},
		},
		Page:  1,
		Limit: 100,
	}

	sql, args := BuildSelect(testMeta, opts, nil)

	assert.Contains(t, sql, "WHERE price >= $1::numeric AND difficulty = $2::text")
	assert.Equal(t, []any{"500", "easy", 100, 0}, args)
}

func TestBuildSelectDropsUnknownFilterFields(t *testing.T) {
	opts := query.Options{
		Filters: []query.Condition{{Field: "nope", Op: query.OpEq, Value: "x"}},
		Page:    1,
		Limit:   100,
	}

	sql, args := BuildSelect(testMeta, opts, nil)

	assert.NotContains(t, sql, "WHERE")
	assert.Equal(t, []any{100, 0}, args)
}

func TestBuildSelectScopeBeforeFilters(t *testing.T) {
	opts := query.Options{
		Filters: []query.Condition{{Field: "price", Op: query.OpLt, Value: "1000"}},
		Page:    1,
		Limit:   100,
	}

	sql, args := BuildSelect(testMeta, opts, map[string]any{"secret": false})

	assert.Contains(t, sql, "WHERE secret = $1 AND price < $2::numeric")
	assert.Equal(t, []any{false, "1000", 100, 0}, args)
}

func TestBuildSelectSort(t *testing.T) {
	opts := query.Options{
		Sort:  []query.SortKey{{Field: "price", Desc: true}, {Field: "name"}},
		Page:  1,
		Limit: 100,
	}

	sql, _ := BuildSelect(testMeta, opts, nil)

	assert.Contains(t, sql, "ORDER BY price DESC, name ASC")
	assert.NotContains(t, sql, "created_at")
}

func TestBuildSelectUnknownSortFallsBack(t *testing.T) {
	opts := query.Options{
		Sort:  []query.SortKey{{Field: "nope"}},
		Page:  1,
		Limit: 100,
	}

	sql, _ := BuildSelect(testMeta, opts, nil)

	assert.Contains(t, sql, "ORDER BY created_at DESC")
}

func TestBuildSelectProjection(t *testing.T) {
	opts := query.Options{Fields: []string{"name", "price", "nope"}, Page: 1, Limit: 100}

	sql, _ := BuildSelect(testMeta, opts, nil)

	// id is always kept; unknown fields are dropped
	assert.Contains(t, sql, "SELECT id, name, price FROM tours")
	assert.NotContains(t, sql, "difficulty")
}

func TestBuildSelectPagination(t *testing.T) {
	opts := query.Options{Page: 3, Limit: 10}

	sql, args := BuildSelect(testMeta, opts, nil)

	assert.Contains(t, sql, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{10, 20}, args)
}

func TestBuildSelectAliasedColumns(t *testing.T) {
	m := Meta{
		Table:    "reviews r",
		IDColumn: "r.id",
		Joins:    "JOIN users u ON u.id = r.user_id",
		Fields: map[string]Field{
			"id":       {Column: "r.id"},
			"rating":   {Column: "r.rating", Cast: "int"},
			"userName": {Column: "u.name AS user_name"},
		},
		Select:      []string{"id", "rating", "userName"},
		DefaultSort: "r.created_at DESC",
	}
	opts := query.Options{
		Filters: []query.Condition{{Field: "userName", Op: query.OpEq, Value: "Ann"}},
		Page:    1,
		Limit:   100,
	}

	sql, _ := BuildSelect(m, opts, nil)

	assert.Contains(t, sql, "FROM reviews r JOIN users u ON u.id = r.user_id")
	// the select alias must not leak into the WHERE clause
	assert.Contains(t, sql, "WHERE u.name = $1::text")
	assert.Equal(t, "reviews", m.baseTable())
}

func TestBuildGetOneScopedRead(t *testing.T) {
	sql, args := BuildGetOne(testMeta, map[string]any{"id": "t1", "secret": false})

	assert.Equal(t, "SELECT id, name, price, difficulty FROM tours WHERE id = $1 AND secret = $2", sql)
	assert.Equal(t, []any{"t1", false}, args)
}
