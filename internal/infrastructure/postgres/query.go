package postgres

import (
	"fmt"
	"sort"
	"strings"

	"tourbook/pkg/query"
)

// Field maps an API field name to a SQL column expression. Cast is the
// Postgres type filter parameters are cast to; empty means text.
type Field struct {
	Column string
	Cast   string
}

// Meta is the per-entity allow-list the generic store queries through.
// Filter, sort and projection fields all resolve against Fields; anything
// the map does not name is silently dropped from the request.
type Meta struct {
	Table string
	// IDColumn is the (qualified, when Joins is set) primary key column.
	IDColumn string
	// Fields maps API field names to selectable/filterable columns.
	Fields map[string]Field
	// Select is the default projection, as API field names. "id" is always
	// included even when a fields parameter narrows the projection.
	Select []string
	// Joins is appended verbatim after FROM; column expressions may
	// reference its aliases.
	Joins string
	// DefaultSort keeps list output stable when the request does not sort.
	DefaultSort string
}

// baseTable strips a list alias ("reviews r" -> "reviews") for mutations.
func (m Meta) baseTable() string {
	if i := strings.IndexByte(m.Table, ' '); i > 0 {
		return m.Table[:i]
	}
	return m.Table
}

func (m Meta) idColumn() string {
	if m.IDColumn != "" {
		return m.IDColumn
	}
	return "id"
}

// selectList resolves the projection. Requested fields not in the allow-list
// are dropped; an empty intersection falls back to the default projection.
func (m Meta) selectList(requested []string) []string {
	names := m.Select
	if len(requested) > 0 {
		narrowed := make([]string, 0, len(requested)+1)
		seen := map[string]bool{}
		for _, f := range append([]string{"id"}, requested...) {
			if _, ok := m.Fields[f]; ok && !seen[f] {
				narrowed = append(narrowed, f)
				seen[f] = true
			}
		}
		if len(narrowed) > 1 {
			names = narrowed
		}
	}
	cols := make([]string, 0, len(names))
	for _, name := range names {
		f := m.Fields[name]
		if f.Column == "" {
			continue
		}
		cols = append(cols, f.Column)
	}
	return cols
}

// filterColumn strips a select alias ("u.name AS user_name" -> "u.name")
// so the expression is usable in WHERE and ORDER BY.
func filterColumn(f Field) string {
	if i := strings.Index(f.Column, " AS "); i > 0 {
		return f.Column[:i]
	}
	return f.Column
}

var sqlOps = map[query.Op]string{
	query.OpEq:  "=",
	query.OpGte: ">=",
	query.OpGt:  ">",
	query.OpLte: "<=",
	query.OpLt:  "<",
}

// BuildSelect translates parsed query options plus an optional caller scope
// filter into a parameterized SELECT.
func BuildSelect(m Meta, opts query.Options, scope map[string]any) (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(m.selectList(opts.Fields), ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(m.Table)
	if m.Joins != "" {
		sb.WriteString(" ")
		sb.WriteString(m.Joins)
	}

	var where []string
	for _, key := range sortedKeys(scope) {
		args = append(args, scope[key])
		where = append(where, fmt.Sprintf("%s = $%d", key, len(args)))
	}
	for _, cond := range opts.Filters {
		f, ok := m.Fields[cond.Field]
		if !ok {
			continue
		}
		cast := f.Cast
		if cast == "" {
			cast = "text"
		}
		args = append(args, cond.Value)
		where = append(where, fmt.Sprintf("%s %s $%d::%s", filterColumn(f), sqlOps[cond.Op], len(args), cast))
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	var order []string
	for _, key := range opts.Sort {
		f, ok := m.Fields[key.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if key.Desc {
			dir = "DESC"
		}
		order = append(order, filterColumn(f)+" "+dir)
	}
	if len(order) == 0 && m.DefaultSort != "" {
		order = append(order, m.DefaultSort)
	}
	if len(order) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(order, ", "))
	}

	args = append(args, opts.Limit)
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, opts.Offset())
	sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	return sb.String(), args
}

// BuildGetOne builds the single-row read: the full default projection scoped
// by equality on every given column.
func BuildGetOne(m Meta, scope map[string]any) (string, []any) {
	where := make([]string, 0, len(scope))
	args := make([]any, 0, len(scope))
	for _, key := range sortedKeys(scope) {
		args = append(args, scope[key])
		where = append(where, fmt.Sprintf("%s = $%d", key, len(args)))
	}
	sql := fmt.Sprintf(
		"SELECT %s FROM %s",
		strings.Join(m.selectList(nil), ", "), m.Table,
	)
	if m.Joins != "" {
		sql += " " + m.Joins
	}
	return sql + " WHERE " + strings.Join(where, " AND "), args
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
