package feedback

import (
	"context"
	"errors"

	"foodshare/internal/domain"
	"foodshare/internal/pkg/validator"
	"foodshare/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	feedback FeedbackRepository
	matches  MatchRepository
}

func NewService(feedback FeedbackRepository, matches MatchRepository) *Service {
	return &Service{feedback: feedback, matches: matches}
}

// Create records feedback on a match. The author must be one of the match
// participants; the stored donor and recipient ids come from the match row,
// not from the caller.
func (s *Service) Create(ctx context.Context, req CreateFeedbackRequest) (*domain.Feedback, error) {
	if errs := validator.Validate(domain.Feedback{MatchID: req.MatchID, Rating: req.Rating}); errs != nil {
		return nil, ErrValidation
	}

	m, err := s.matches.GetByID(ctx, req.MatchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if req.AuthorID != m.DonorID && req.AuthorID != m.RecipientID {
		return nil, ErrForbidden
	}

	f := &domain.Feedback{
		MatchID:     m.ID,
		DonorID:     m.DonorID,
		RecipientID: m.RecipientID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}
	if err := s.feedback.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]repository.FeedbackDetails, error) {
	return s.feedback.ListForUser(ctx, userID)
}
