package ports

import (
	"context"

	"github.com/aireviews/review-system/internal/core/domain"
)

// ListReviewsInput carries moderation listing parameters.
type ListReviewsInput struct {
	Sentiment string
	Spam      *bool
	Page      int
	Limit     int
}

// ListReviewsResult is the paginated moderation view.
type ListReviewsResult struct {
	Reviews []domain.Review
	Total   int64
	Page    int
	Limit   int
}

// Summary is the condensed feedback digest shown on the admin dashboard.
type Summary struct {
	Text string `json:"summary"`
	// Degraded is true when the analysis service was unreachable and the
	// summary was computed locally from the aggregates instead.
	Degraded bool `json:"degraded,omitempty"`
}

// AdminService defines the moderation and analytics operations.
type AdminService interface {
	ListReviews(ctx context.Context, input ListReviewsInput) (*ListReviewsResult, error)
	MarkSpam(ctx context.Context, reviewID string, spam bool) (*domain.Review, error)
	Stats(ctx context.Context) (*domain.ReviewStats, error)
	Summarize(ctx context.Context) (*Summary, error)
}
