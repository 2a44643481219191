package application

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"tourbook/internal/domain/entity"
	repo "tourbook/internal/domain/repository"
	"tourbook/pkg/query"
)

// ReviewService owns review mutations and keeps each tour's denormalized
// rating fields equal to a fresh recomputation over its live reviews.
type ReviewService struct {
	Reviews repo.ReviewRepository
	Tours   repo.TourRepository
	Logger  *logrus.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewReviewService(reviews repo.ReviewRepository, tours repo.TourRepository, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Reviews: reviews, Tours: tours, Logger: logger, locks: make(map[string]*sync.Mutex)}
}

func (s *ReviewService) Create(ctx context.Context, cols map[string]any) (*entity.Review, error) {
	r, err := s.Reviews.Create(ctx, cols)
	if err != nil {
		return nil, err
	}
	if err := s.syncTourRatings(ctx, r.TourID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*entity.Review, error) {
	return s.Reviews.GetByID(ctx, id)
}

// List returns reviews; scope carries the nested-route tour filter when set.
func (s *ReviewService) List(ctx context.Context, opts query.Options, tourID string) ([]entity.Review, error) {
	var scope map[string]any
	if tourID != "" {
		scope = map[string]any{"tour_id": tourID}
	}
	return s.Reviews.List(ctx, opts, scope)
}

// Update mutates a review. The tour id is read from the stored review, not
// the request, so the right aggregate is resynced even if the caller lies.
func (s *ReviewService) Update(ctx context.Context, id string, cols map[string]any) (*entity.Review, error) {
	before, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := s.Reviews.Update(ctx, id, cols)
	if err != nil {
		return nil, err
	}
	if err := s.syncTourRatings(ctx, before.TourID); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a review. The tour id must be snapshotted first; after the
// delete there is no row left to read it from.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	before, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Reviews.Delete(ctx, id); err != nil {
		return err
	}
	return s.syncTourRatings(ctx, before.TourID)
}

// syncTourRatings recomputes the tour's review count and mean and writes
// them back. Runs serialized per tour id so two concurrent review writes
// cannot interleave a stale aggregate over a fresh one.
func (s *ReviewService) syncTourRatings(ctx context.Context, tourID string) error {
	lock := s.tourLock(tourID)
	lock.Lock()
	defer lock.Unlock()

	stats, err := s.Reviews.AggregateForTour(ctx, tourID)
	if err != nil {
		return err
	}
	if stats.Count == 0 {
		stats = entity.RatingStats{Count: 0, Average: entity.DefaultRatingsAverage}
	}
	if err := s.Tours.SetRatingStats(ctx, tourID, stats); err != nil {
		s.Logger.WithError(err).WithField("tour_id", tourID).Error("rating sync failed")
		return err
	}
	return nil
}

func (s *ReviewService) tourLock(tourID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[tourID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[tourID] = l
	}
	return l
}
