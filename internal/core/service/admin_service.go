package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aireviews/review-system/internal/core/domain"
	"github.com/aireviews/review-system/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// AdminService implements moderation and analytics over the review corpus.
type AdminService struct {
	reviews  ports.ReviewRepository
	analyzer ports.Analyzer
	log      zerolog.Logger
}

func NewAdminService(reviews ports.ReviewRepository, analyzer ports.Analyzer, log zerolog.Logger) *AdminService {
	return &AdminService{reviews: reviews, analyzer: analyzer, log: log}
}

// ListReviews returns a filtered, paginated moderation view.
func (s *AdminService) ListReviews(ctx context.Context, input ports.ListReviewsInput) (*ports.ListReviewsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	reviews, total, err := s.reviews.List(ctx, ports.ReviewFilter{
		Sentiment: input.Sentiment,
		Spam:      input.Spam,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return &ports.ListReviewsResult{
		Reviews: reviews,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// MarkSpam sets or clears the moderation flag on a review.
func (s *AdminService) MarkSpam(ctx context.Context, reviewID string, spam bool) (*domain.Review, error) {
	review, err := s.reviews.SetSpam(ctx, reviewID, spam)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("review_id", reviewID).Bool("spam", spam).Msg("review spam flag updated")
	return review, nil
}

// Stats returns corpus-wide aggregates.
func (s *AdminService) Stats(ctx context.Context) (*domain.ReviewStats, error) {
	stats, err := s.reviews.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}
	return stats, nil
}

// Summarize condenses the top problems and good points into a short digest
// via the analysis service. When that call fails the summary is computed
// locally from the aggregates instead of failing the request; no retry is
// attempted.
func (s *AdminService) Summarize(ctx context.Context) (*ports.Summary, error) {
	stats, err := s.reviews.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}

	if stats.TotalReviews == 0 {
		return &ports.Summary{Text: "No reviews available yet."}, nil
	}

	problems := labels(stats.TopProblems)
	goodPoints := labels(stats.TopGoodPoints)

	text, err := s.analyzer.Summarize(ctx, problems, goodPoints)
	if err != nil {
		s.log.Warn().Err(err).Msg("summary generation failed, falling back to local digest")
		return &ports.Summary{Text: localSummary(problems, goodPoints), Degraded: true}, nil
	}

	return &ports.Summary{Text: text}, nil
}

func labels(counts []domain.LabeledCount) []string {
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		out = append(out, c.Text)
	}
	return out
}

// localSummary is the degraded digest used when the analysis service is
// unreachable: a plain enumeration of the aggregated labels.
func localSummary(problems, goodPoints []string) string {
	var b strings.Builder
	if len(problems) > 0 {
		b.WriteString("Top reported problems: ")
		b.WriteString(strings.Join(problems, ", "))
		b.WriteString(".")
	}
	if len(goodPoints) > 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("Most praised points: ")
		b.WriteString(strings.Join(goodPoints, ", "))
		b.WriteString(".")
	}
	if b.Len() == 0 {
		return "No labeled feedback collected yet."
	}
	return b.String()
}
