package repository

import (
	"context"

	"tourbook/internal/domain/entity"
	"tourbook/pkg/query"
)

// BookingRepository defines booking-related database operations.
type BookingRepository interface {
	Create(ctx context.Context, cols map[string]any) (*entity.Booking, error)
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	List(ctx context.Context, opts query.Options, scope map[string]any) ([]entity.Booking, error)
	Update(ctx context.Context, id string, cols map[string]any) (*entity.Booking, error)
	Delete(ctx context.Context, id string) error
}
