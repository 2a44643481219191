package repository

import (
	"context"

	"tourbook/internal/domain/entity"
	"tourbook/pkg/query"
)

// TourRepository defines tour-related database operations.
type TourRepository interface {
	Create(ctx context.Context, cols map[string]any) (*entity.Tour, error)
	GetByID(ctx context.Context, id string) (*entity.Tour, error)
	List(ctx context.Context, opts query.Options, scope map[string]any) ([]entity.Tour, error)
	Update(ctx context.Context, id string, cols map[string]any) (*entity.Tour, error)
	Delete(ctx context.Context, id string) error

	Stats(ctx context.Context) ([]entity.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]entity.MonthlyPlan, error)
	// SetRatingStats writes the derived rating fields; only the rating sync
	// calls this.
	SetRatingStats(ctx context.Context, tourID string, stats entity.RatingStats) error
}
