package feedback

import (
	"context"

	"foodshare/internal/domain"
	"foodshare/internal/repository"
)

type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) error
	ListForUser(ctx context.Context, userID int64) ([]repository.FeedbackDetails, error)
}

type MatchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Match, error)
}
