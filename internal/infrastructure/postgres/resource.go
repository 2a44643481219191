package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourbook/pkg/apperr"
	"tourbook/pkg/query"
)

// Resource is the entity-agnostic store the per-entity repositories build
// on: create, get-one (with optional population via Meta.Joins), filtered/
// sorted/projected/paginated list, update and delete, all against a single
// table described by Meta.
type Resource[T any] struct {
	pool *pgxpool.Pool
	meta Meta
}

func NewResource[T any](pool *pgxpool.Pool, meta Meta) *Resource[T] {
	return &Resource[T]{pool: pool, meta: meta}
}

// Insert writes the given columns and reads the row back through the full
// (possibly joined) projection.
func (r *Resource[T]) Insert(ctx context.Context, cols map[string]any) (*T, error) {
	names := sortedKeys(cols)
	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = cols[name]
	}
	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		r.meta.baseTable(), strings.Join(names, ", "), strings.Join(placeholders, ", "),
	)
	var id string
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return nil, apperr.FromPG(err)
	}
	return r.GetByID(ctx, id)
}

func (r *Resource[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.GetOne(ctx, map[string]any{r.meta.idColumn(): id})
}

// GetOne reads the single row matching all scope columns through the full
// (possibly joined) projection.
func (r *Resource[T]) GetOne(ctx context.Context, scope map[string]any) (*T, error) {
	sql, args := BuildGetOne(r.meta, scope)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	doc, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	return &doc, nil
}

// List applies the caller scope filter merged with the parsed query options.
func (r *Resource[T]) List(ctx context.Context, opts query.Options, scope map[string]any) ([]T, error) {
	sql, args := BuildSelect(r.meta, opts, scope)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	docs, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	return docs, nil
}

// UpdateByID mutates the given columns and reads the row back. NotFound when
// no row matches.
func (r *Resource[T]) UpdateByID(ctx context.Context, id string, cols map[string]any) (*T, error) {
	if len(cols) == 0 {
		return r.GetByID(ctx, id)
	}
	names := sortedKeys(cols)
	sets := make([]string, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		args = append(args, cols[name])
		sets[i] = fmt.Sprintf("%s = $%d", name, len(args))
	}
	args = append(args, id)
	sql := fmt.Sprintf(
		"UPDATE %s SET %s, updated_at = now() WHERE id = $%d",
		r.meta.baseTable(), strings.Join(sets, ", "), len(args),
	)
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Resource[T]) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.meta.baseTable()), id)
	if err != nil {
		return apperr.FromPG(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
