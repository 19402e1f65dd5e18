package feedback

import (
	"context"
	"testing"

	"foodshare/internal/domain"
	"foodshare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	args := m.Called(ctx, f)
	if f != nil {
		f.ID = 55 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockFeedbackRepository) ListForUser(ctx context.Context, userID int64) ([]repository.FeedbackDetails, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]repository.FeedbackDetails), args.Error(1)
}

type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}

func scheduledMatch() *domain.Match {
	return &domain.Match{
		ID:          3,
		DonorID:     1,
		RecipientID: 2,
		Status:      domain.MatchCompleted,
	}
}

func TestCreate_Success(t *testing.T) {
	feedback := new(MockFeedbackRepository)
	matches := new(MockMatchRepository)
	svc := NewService(feedback, matches)

	matches.On("GetByID", mock.Anything, int64(3)).Return(scheduledMatch(), nil)
	feedback.On("Create", mock.Anything, mock.AnythingOfType("*domain.Feedback")).Return(nil)

	f, err := svc.Create(context.Background(), CreateFeedbackRequest{
		AuthorID: 2,
		MatchID:  3,
		Rating:   5,
		Comment:  "Great donor, smooth pickup",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(55), f.ID)
	// Party ids come from the match row, not the caller
	assert.Equal(t, int64(1), f.DonorID)
	assert.Equal(t, int64(2), f.RecipientID)
}

func TestCreate_RatingBounds(t *testing.T) {
	svc := NewService(new(MockFeedbackRepository), new(MockMatchRepository))

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Create(context.Background(), CreateFeedbackRequest{
			AuthorID: 2,
			MatchID:  3,
			Rating:   rating,
		})
		assert.ErrorIs(t, err, ErrValidation, "rating %d", rating)
	}
}

func TestCreate_MatchNotFound(t *testing.T) {
	feedback := new(MockFeedbackRepository)
	matches := new(MockMatchRepository)
	svc := NewService(feedback, matches)

	matches.On("GetByID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), CreateFeedbackRequest{
		AuthorID: 2,
		MatchID:  3,
		Rating:   4,
	})
	assert.ErrorIs(t, err, ErrMatchNotFound)
	feedback.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_NotParticipant(t *testing.T) {
	feedback := new(MockFeedbackRepository)
	matches := new(MockMatchRepository)
	svc := NewService(feedback, matches)

	matches.On("GetByID", mock.Anything, int64(3)).Return(scheduledMatch(), nil)

	_, err := svc.Create(context.Background(), CreateFeedbackRequest{
		AuthorID: 99,
		MatchID:  3,
		Rating:   4,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}
