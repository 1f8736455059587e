package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aireviews/review-system/internal/core/domain"
	"github.com/aireviews/review-system/internal/core/ports"
)

// ReviewService implements the user-facing review operations.
type ReviewService struct {
	reviews  ports.ReviewRepository
	analyzer ports.Analyzer
	log      zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, analyzer ports.Analyzer, log zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, analyzer: analyzer, log: log}
}

// Create validates a submission, enriches it through the analysis service,
// and persists the result. A review is never stored without its enrichment:
// when the analysis service is down the submission fails with
// domain.ErrAnalyzerUnavailable rather than writing a half-labeled document.
func (s *ReviewService) Create(ctx context.Context, input ports.CreateReviewInput) (*domain.Review, error) {
	if err := validateReviewInput(input.Text, input.Rating); err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.Analyze(ctx, input.Text)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", input.User.UserID).Msg("analysis failed, rejecting review")
		return nil, err
	}

	now := time.Now().UTC()
	review := &domain.Review{
		UserID:      input.User.UserID,
		Email:       input.User.Email,
		Text:        input.Text,
		Rating:      input.Rating,
		Sentiment:   analysis.Sentiment,
		AIScore:     analysis.Score,
		Spam:        analysis.Spam,
		Problems:    analysis.Problems,
		GoodPoints:  analysis.GoodPoints,
		AIUpdatedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info().
		Str("review_id", created.ID).
		Str("user_id", input.User.UserID).
		Str("sentiment", created.Sentiment).
		Bool("spam", created.Spam).
		Msg("review created")

	return created, nil
}

// ListAll returns every review newest-first. Restricted to admins at the
// routing layer.
func (s *ReviewService) ListAll(ctx context.Context) ([]domain.Review, error) {
	reviews, _, err := s.reviews.List(ctx, ports.ReviewFilter{})
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// MyLatest returns the caller's newest review.
func (s *ReviewService) MyLatest(ctx context.Context, user ports.Identity) (*domain.Review, error) {
	return s.reviews.FindLatestByUser(ctx, user.UserID)
}

// Update rewrites the text and rating of a review owned by the caller. The
// stored enrichment is left as analyzed at creation time.
func (s *ReviewService) Update(ctx context.Context, input ports.UpdateReviewInput) (*domain.Review, error) {
	if err := validateReviewInput(input.Text, input.Rating); err != nil {
		return nil, err
	}

	updated, err := s.reviews.Update(ctx, input.ReviewID, input.User.UserID, input.Text, input.Rating)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("review_id", input.ReviewID).Str("user_id", input.User.UserID).Msg("review updated")
	return updated, nil
}

// Delete removes a review owned by the caller.
func (s *ReviewService) Delete(ctx context.Context, user ports.Identity, reviewID string) error {
	if err := s.reviews.Delete(ctx, reviewID, user.UserID); err != nil {
		return err
	}
	s.log.Info().Str("review_id", reviewID).Str("user_id", user.UserID).Msg("review deleted")
	return nil
}

func validateReviewInput(text string, rating int) error {
	if text == "" {
		return domain.ErrTextRequired
	}
	if len(text) > domain.MaxReviewLength {
		return domain.ErrTextTooLong
	}
	if rating < domain.MinRating || rating > domain.MaxRating {
		return domain.ErrRatingRange
	}
	return nil
}
