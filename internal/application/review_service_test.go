package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tourbook/internal/domain/entity"
	"tourbook/pkg/apperr"
	"tourbook/pkg/query"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, cols map[string]any) (*entity.Review, error) {
	args := m.Called(ctx, cols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context, opts query.Options, scope map[string]any) ([]entity.Review, error) {
	args := m.Called(ctx, opts, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, id string, cols map[string]any) (*entity.Review, error) {
	args := m.Called(ctx, id, cols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) AggregateForTour(ctx context.Context, tourID string) (entity.RatingStats, error) {
	args := m.Called(ctx, tourID)
	return args.Get(0).(entity.RatingStats), args.Error(1)
}

// MockTourRepository is a mock implementation of repository.TourRepository.
type MockTourRepository struct {
	mock.Mock
}

func (m *MockTourRepository) Create(ctx context.Context, cols map[string]any) (*entity.Tour, error) {
	args := m.Called(ctx, cols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tour), args.Error(1)
}

func (m *MockTourRepository) GetByID(ctx context.Context, id string) (*entity.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tour), args.Error(1)
}

func (m *MockTourRepository) List(ctx context.Context, opts query.Options, scope map[string]any) ([]entity.Tour, error) {
	args := m.Called(ctx, opts, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Tour), args.Error(1)
}

func (m *MockTourRepository) Update(ctx context.Context, id string, cols map[string]any) (*entity.Tour, error) {
	args := m.Called(ctx, id, cols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tour), args.Error(1)
}

func (m *MockTourRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTourRepository) Stats(ctx context.Context) ([]entity.TourStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TourStats), args.Error(1)
}

func (m *MockTourRepository) MonthlyPlan(ctx context.Context, year int) ([]entity.MonthlyPlan, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.MonthlyPlan), args.Error(1)
}

func (m *MockTourRepository) SetRatingStats(ctx context.Context, tourID string, stats entity.RatingStats) error {
	args := m.Called(ctx, tourID, stats)
	return args.Error(0)
}

func TestReviewCreateSyncsTourRatings(t *testing.T) {
	reviews := new(MockReviewRepository)
	tours := new(MockTourRepository)
	svc := NewReviewService(reviews, tours, testLogger())

	cols := map[string]any{"review": "great", "rating": 5, "tour_id": "t1", "user_id": "u1"}
	reviews.On("Create", mock.Anything, cols).
		Return(&entity.Review{ID: "r1", TourID: "t1", Rating: 5}, nil)
	reviews.On("AggregateForTour", mock.Anything, "t1").
		Return(entity.RatingStats{Count: 3, Average: 4.3333}, nil)
	tours.On("SetRatingStats", mock.Anything, "t1", entity.RatingStats{Count: 3, Average: 4.3333}).
		Return(nil)

	r, err := svc.Create(context.Background(), cols)

	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)
	reviews.AssertExpectations(t)
	tours.AssertExpectations(t)
}

func TestReviewDeleteSnapshotsTourBeforeMutation(t *testing.T) {
	reviews := new(MockReviewRepository)
	tours := new(MockTourRepository)
	svc := NewReviewService(reviews, tours, testLogger())

	// the tour id is only knowable before the delete
	reviews.On("GetByID", mock.Anything, "r1").
		Return(&entity.Review{ID: "r1", TourID: "t1"}, nil)
	reviews.On("Delete", mock.Anything, "r1").Return(nil)
	// last review gone: fields reset to the empty-set default
	reviews.On("AggregateForTour", mock.Anything, "t1").
		Return(entity.RatingStats{Count: 0, Average: 0}, nil)
	tours.On("SetRatingStats", mock.Anything, "t1", entity.RatingStats{Count: 0, Average: entity.DefaultRatingsAverage}).
		Return(nil)

	err := svc.Delete(context.Background(), "r1")

	require.NoError(t, err)
	reviews.AssertExpectations(t)
	tours.AssertExpectations(t)
}

func TestReviewUpdateSyncsStoredTour(t *testing.T) {
	reviews := new(MockReviewRepository)
	tours := new(MockTourRepository)
	svc := NewReviewService(reviews, tours, testLogger())

	reviews.On("GetByID", mock.Anything, "r1").
		Return(&entity.Review{ID: "r1", TourID: "t1", Rating: 2}, nil)
	reviews.On("Update", mock.Anything, "r1", map[string]any{"rating": 4}).
		Return(&entity.Review{ID: "r1", TourID: "t1", Rating: 4}, nil)
	reviews.On("AggregateForTour", mock.Anything, "t1").
		Return(entity.RatingStats{Count: 1, Average: 4}, nil)
	tours.On("SetRatingStats", mock.Anything, "t1", entity.RatingStats{Count: 1, Average: 4}).
		Return(nil)

	r, err := svc.Update(context.Background(), "r1", map[string]any{"rating": 4})

	require.NoError(t, err)
	assert.Equal(t, 4, r.Rating)
	tours.AssertExpectations(t)
}

func TestReviewDeleteMissing(t *testing.T) {
	reviews := new(MockReviewRepository)
	tours := new(MockTourRepository)
	svc := NewReviewService(reviews, tours, testLogger())

	reviews.On("GetByID", mock.Anything, "ghost").Return(nil, apperr.ErrNotFound)

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	tours.AssertNotCalled(t, "SetRatingStats", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewCreateAggregateFailure(t *testing.T) {
	reviews := new(MockReviewRepository)
	tours := new(MockTourRepository)
	svc := NewReviewService(reviews, tours, testLogger())

	reviews.On("Create", mock.Anything, mock.Anything).
		Return(&entity.Review{ID: "r1", TourID: "t1"}, nil)
	reviews.On("AggregateForTour", mock.Anything, "t1").
		Return(entity.RatingStats{}, errors.New("db down"))

	_, err := svc.Create(context.Background(), map[string]any{})

	assert.Error(t, err)
	tours.AssertNotCalled(t, "SetRatingStats", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewListScopesNestedTour(t *testing.T) {
	reviews := new(MockReviewRepository)
	svc := NewReviewService(reviews, new(MockTourRepository), testLogger())

	opts := query.Options{Page: 1, Limit: 100}
	reviews.On("List", mock.Anything, opts, map[string]any{"tour_id": "t1"}).
		Return([]entity.Review{{ID: "r1"}}, nil)

	out, err := svc.List(context.Background(), opts, "t1")

	require.NoError(t, err)
	assert.Len(t, out, 1)

	// without a tour the scope stays nil
	reviews.On("List", mock.Anything, opts, map[string]any(nil)).
		Return([]entity.Review{}, nil)
	_, err = svc.List(context.Background(), opts, "")
	require.NoError(t, err)
	reviews.AssertExpectations(t)
}
