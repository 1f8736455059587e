package ports

import (
	"context"

	"github.com/aireviews/review-system/internal/core/domain"
)

// Analyzer is the client interface to the external analysis service.
type Analyzer interface {
	// Analyze enriches a single review text. Transport or service failures
	// surface as errors wrapping domain.ErrAnalyzerUnavailable.
	Analyze(ctx context.Context, text string) (*domain.Analysis, error)
	// Summarize condenses aggregated problem/good-point labels into a short
	// human-readable digest.
	Summarize(ctx context.Context, problems, goodPoints []string) (string, error)
}
