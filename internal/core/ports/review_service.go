package ports

import (
	"context"

	"github.com/aireviews/review-system/internal/core/domain"
)

// Identity is the authenticated caller, as decoded from the session token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// CreateReviewInput carries a new review submission.
type CreateReviewInput struct {
	User   Identity
	Text   string
	Rating int
}

// UpdateReviewInput carries an owner-scoped edit of an existing review.
type UpdateReviewInput struct {
	User     Identity
	ReviewID string
	Text     string
	Rating   int
}

// ReviewService defines use-case operations on reviews.
type ReviewService interface {
	Create(ctx context.Context, input CreateReviewInput) (*domain.Review, error)
	ListAll(ctx context.Context) ([]domain.Review, error)
	MyLatest(ctx context.Context, user Identity) (*domain.Review, error)
	Update(ctx context.Context, input UpdateReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, user Identity, reviewID string) error
}
