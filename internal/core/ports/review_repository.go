package ports

import (
	"context"

	"github.com/aireviews/review-system/internal/core/domain"
)

// ReviewFilter narrows listing queries. Zero values mean "no filter".
type ReviewFilter struct {
	Sentiment string
	Spam      *bool
	Page      int
	Limit     int
}

// ReviewRepository defines the interface for review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	// FindByID returns a review by id; when userID is non-empty the lookup is
	// additionally scoped to that owner. Misses map to domain.ErrReviewNotFound.
	FindByID(ctx context.Context, id, userID string) (*domain.Review, error)
	// FindLatestByUser returns the newest review submitted by userID.
	FindLatestByUser(ctx context.Context, userID string) (*domain.Review, error)
	// List returns reviews newest-first with optional filters and pagination,
	// plus the total count matching the filter.
	List(ctx context.Context, filter ReviewFilter) ([]domain.Review, int64, error)
	// Update rewrites text and rating of an owner-scoped review.
	Update(ctx context.Context, id, userID string, text string, rating int) (*domain.Review, error)
	// Delete removes an owner-scoped review.
	Delete(ctx context.Context, id, userID string) error
	// SetSpam toggles the moderation flag on any review.
	SetSpam(ctx context.Context, id string, spam bool) (*domain.Review, error)
	// Stats computes corpus-wide aggregates for the admin dashboard.
	Stats(ctx context.Context) (*domain.ReviewStats, error)
}
