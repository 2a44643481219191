package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"tourbook/internal/domain/entity"
	repo "tourbook/internal/domain/repository"
	"tourbook/pkg/query"
)

// CheckoutSession is what the payment provider hands back for the client to
// complete payment with.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutProvider abstracts the payment gateway. Charging itself is out of
// scope here; implementations create a hosted checkout session and the
// booking is recorded once the session succeeds.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, tour *entity.Tour, user *entity.User) (*CheckoutSession, error)
}

// DirectCheckout is the provider used when no payment gateway is
// configured: it records the booking as paid immediately and points the
// client at their bookings page.
type DirectCheckout struct {
	Bookings repo.BookingRepository
	BaseURL  string
}

func (d *DirectCheckout) CreateSession(ctx context.Context, tour *entity.Tour, user *entity.User) (*CheckoutSession, error) {
	b, err := d.Bookings.Create(ctx, map[string]any{
		"tour_id": tour.ID,
		"user_id": user.ID,
		"price":   tour.Price,
		"paid":    true,
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: b.ID, URL: d.BaseURL + "/my-bookings"}, nil
}

// BookingService records seats on tours and brokers checkout sessions.
type BookingService struct {
	Bookings repo.BookingRepository
	Tours    repo.TourRepository
	Checkout CheckoutProvider
	Logger   *logrus.Logger
}

func NewBookingService(bookings repo.BookingRepository, tours repo.TourRepository, checkout CheckoutProvider, logger *logrus.Logger) *BookingService {
	return &BookingService{Bookings: bookings, Tours: tours, Checkout: checkout, Logger: logger}
}

// CreateCheckoutSession starts payment for a tour on behalf of the caller.
func (s *BookingService) CreateCheckoutSession(ctx context.Context, tourID string, user *entity.User) (*CheckoutSession, error) {
	tour, err := s.Tours.GetByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	return s.Checkout.CreateSession(ctx, tour, user)
}

func (s *BookingService) Create(ctx context.Context, cols map[string]any) (*entity.Booking, error) {
	return s.Bookings.Create(ctx, cols)
}

func (s *BookingService) Get(ctx context.Context, id string) (*entity.Booking, error) {
	return s.Bookings.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context, opts query.Options) ([]entity.Booking, error) {
	return s.Bookings.List(ctx, opts, nil)
}

func (s *BookingService) Update(ctx context.Context, id string, cols map[string]any) (*entity.Booking, error) {
	return s.Bookings.Update(ctx, id, cols)
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	return s.Bookings.Delete(ctx, id)
}
