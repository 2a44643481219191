package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tourbook/internal/domain/entity"
	"tourbook/internal/domain/repository"
	"tourbook/pkg/apperr"
	"tourbook/pkg/query"
)

// Reviews are always read with their reviewer populated, mirroring the
// read-path population directive on the review collection.
var reviewMeta = Meta{
	Table:    "reviews r",
	IDColumn: "r.id",
	Joins:    "JOIN users u ON u.id = r.user_id",
	Fields: map[string]Field{
		"id":        {Column: "r.id"},
		"review":    {Column: "r.review"},
		"rating":    {Column: "r.rating", Cast: "int"},
		"tour":      {Column: "r.tour_id", Cast: "uuid"},
		"user":      {Column: "r.user_id", Cast: "uuid"},
		"userName":  {Column: "u.name AS user_name"},
		"userPhoto": {Column: "u.photo AS user_photo"},
		"createdAt": {Column: "r.created_at", Cast: "timestamptz"},
	},
	Select:      []string{"id", "review", "rating", "tour", "user", "userName", "userPhoto", "createdAt"},
	DefaultSort: "r.created_at DESC",
}

type ReviewRepository struct {
	pool *pgxpool.Pool
	res  *Resource[entity.Review]
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool, res: NewResource[entity.Review](pool, reviewMeta)}
}

func (r *ReviewRepository) Create(ctx context.Context, cols map[string]any) (*entity.Review, error) {
	return r.res.Insert(ctx, cols)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return r.res.GetByID(ctx, id)
}

func (r *ReviewRepository) List(ctx context.Context, opts query.Options, scope map[string]any) ([]entity.Review, error) {
	return r.res.List(ctx, opts, scope)
}

func (r *ReviewRepository) Update(ctx context.Context, id string, cols map[string]any) (*entity.Review, error) {
	return r.res.UpdateByID(ctx, id, cols)
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	return r.res.DeleteByID(ctx, id)
}

func (r *ReviewRepository) AggregateForTour(ctx context.Context, tourID string) (entity.RatingStats, error) {
	var stats entity.RatingStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)::int, COALESCE(AVG(rating), 0)::float8
		FROM reviews
		WHERE tour_id = $1
	`, tourID).Scan(&stats.Count, &stats.Average)
	if err != nil {
		return entity.RatingStats{}, apperr.FromPG(err)
	}
	return stats, nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
