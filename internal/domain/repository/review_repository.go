package repository

import (
	"context"

	"tourbook/internal/domain/entity"
	"tourbook/pkg/query"
)

// ReviewRepository defines review-related database operations.
type ReviewRepository interface {
	Create(ctx context.Context, cols map[string]any) (*entity.Review, error)
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	List(ctx context.Context, opts query.Options, scope map[string]any) ([]entity.Review, error)
	Update(ctx context.Context, id string, cols map[string]any) (*entity.Review, error)
	Delete(ctx context.Context, id string) error

	// AggregateForTour recomputes count and mean rating over all reviews
	// currently referencing the tour.
	AggregateForTour(ctx context.Context, tourID string) (entity.RatingStats, error)
}
