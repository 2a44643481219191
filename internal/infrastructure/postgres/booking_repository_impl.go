package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tourbook/internal/domain/entity"
	"tourbook/internal/domain/repository"
	"tourbook/pkg/query"
)

var bookingMeta = Meta{
	Table:    "bookings b",
	IDColumn: "b.id",
	Joins:    "JOIN tours t ON t.id = b.tour_id",
	Fields: map[string]Field{
		"id":        {Column: "b.id"},
		"tour":      {Column: "b.tour_id", Cast: "uuid"},
		"user":      {Column: "b.user_id", Cast: "uuid"},
		"price":     {Column: "b.price", Cast: "numeric"},
		"paid":      {Column: "b.paid", Cast: "bool"},
		"tourName":  {Column: "t.name AS tour_name"},
		"createdAt": {Column: "b.created_at", Cast: "timestamptz"},
	},
	Select:      []string{"id", "tour", "user", "price", "paid", "tourName", "createdAt"},
	DefaultSort: "b.created_at DESC",
}

type BookingRepository struct {
	pool *pgxpool.Pool
	res  *Resource[entity.Booking]
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool, res: NewResource[entity.Booking](pool, bookingMeta)}
}

func (r *BookingRepository) Create(ctx context.Context, cols map[string]any) (*entity.Booking, error) {
	return r.res.Insert(ctx, cols)
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	return r.res.GetByID(ctx, id)
}

func (r *BookingRepository) List(ctx context.Context, opts query.Options, scope map[string]any) ([]entity.Booking, error) {
	return r.res.List(ctx, opts, scope)
}

func (r *BookingRepository) Update(ctx context.Context, id string, cols map[string]any) (*entity.Booking, error) {
	return r.res.UpdateByID(ctx, id, cols)
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	return r.res.DeleteByID(ctx, id)
}

var _ repository.BookingRepository = (*BookingRepository)(nil)
