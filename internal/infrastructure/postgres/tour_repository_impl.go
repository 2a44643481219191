package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourbook/internal/domain/entity"
	"tourbook/internal/domain/repository"
	"tourbook/pkg/apperr"
	"tourbook/pkg/query"
)

var tourMeta = Meta{
	Table: "tours",
	Fields: map[string]Field{
		"id":              {Column: "id"},
		"name":            {Column: "name"},
		"slug":            {Column: "slug"},
		"duration":        {Column: "duration", Cast: "int"},
		"maxGroupSize":    {Column: "max_group_size", Cast: "int"},
		"difficulty":      {Column: "difficulty"},
		"price":           {Column: "price", Cast: "numeric"},
		"priceDiscount":   {Column: "price_discount", Cast: "numeric"},
		"summary":         {Column: "summary"},
		"description":     {Column: "description"},
		"imageCover":      {Column: "image_cover"},
		"images":          {Column: "images"},
		"startDates":      {Column: "start_dates"},
		"ratingsQuantity": {Column: "ratings_quantity", Cast: "int"},
		"ratingsAverage":  {Column: "ratings_average", Cast: "numeric"},
		"createdAt":       {Column: "created_at", Cast: "timestamptz"},
		"updatedAt":       {Column: "updated_at", Cast: "timestamptz"},
	},
	Select: []string{
		"id", "name", "slug", "duration", "maxGroupSize", "difficulty",
		"price", "priceDiscount", "summary", "description", "imageCover",
		"images", "startDates", "ratingsQuantity", "ratingsAverage",
		"createdAt", "updatedAt",
	},
	DefaultSort: "created_at DESC",
}

type TourRepository struct {
	pool *pgxpool.Pool
	res  *Resource[entity.Tour]
}

func NewTourRepository(pool *pgxpool.Pool) *TourRepository {
	return &TourRepository{pool: pool, res: NewResource[entity.Tour](pool, tourMeta)}
}

func (r *TourRepository) Create(ctx context.Context, cols map[string]any) (*entity.Tour, error) {
	return r.res.Insert(ctx, cols)
}

// GetByID hides secret tours from the detail read the same way List does;
// mutations still read their row back unscoped through the generic store.
func (r *TourRepository) GetByID(ctx context.Context, id string) (*entity.Tour, error) {
	return r.res.GetOne(ctx, map[string]any{"id": id, "secret": false})
}

func (r *TourRepository) List(ctx context.Context, opts query.Options, scope map[string]any) ([]entity.Tour, error) {
	merged := map[string]any{"secret": false}
	for k, v := range scope {
		merged[k] = v
	}
	return r.res.List(ctx, opts, merged)
}

func (r *TourRepository) Update(ctx context.Context, id string, cols map[string]any) (*entity.Tour, error) {
	return r.res.UpdateByID(ctx, id, cols)
}

func (r *TourRepository) Delete(ctx context.Context, id string) error {
	return r.res.DeleteByID(ctx, id)
}

// Stats groups well-rated tours per difficulty.
func (r *TourRepository) Stats(ctx context.Context) ([]entity.TourStats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT difficulty,
		       COUNT(*)::int              AS num_tours,
		       COALESCE(SUM(ratings_quantity), 0)::int AS num_ratings,
		       COALESCE(AVG(ratings_average), 0)::float8 AS avg_rating,
		       COALESCE(AVG(price), 0)::float8 AS avg_price,
		       COALESCE(MIN(price), 0)::float8 AS min_price,
		       COALESCE(MAX(price), 0)::float8 AS max_price
		FROM tours
		WHERE ratings_average >= 4.5
		GROUP BY difficulty
		ORDER BY avg_price
	`)
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	stats, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[entity.TourStats])
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	return stats, nil
}

// MonthlyPlan counts tour starts per month of the given year.
func (r *TourRepository) MonthlyPlan(ctx context.Context, year int) ([]entity.MonthlyPlan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(MONTH FROM d)::int AS month,
		       COUNT(*)::int              AS num_tour_starts,
		       ARRAY_AGG(name)            AS tours
		FROM tours, UNNEST(start_dates) AS d
		WHERE d >= make_date($1, 1, 1) AND d < make_date($1 + 1, 1, 1)
		GROUP BY month
		ORDER BY num_tour_starts DESC
		LIMIT 12
	`, year)
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	plan, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[entity.MonthlyPlan])
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	return plan, nil
}

func (r *TourRepository) SetRatingStats(ctx context.Context, tourID string, stats entity.RatingStats) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tours
		SET ratings_quantity = $1, ratings_average = $2, updated_at = now()
		WHERE id = $3
	`, stats.Count, stats.Average, tourID)
	if err != nil {
		return apperr.FromPG(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

var _ repository.TourRepository = (*TourRepository)(nil)
