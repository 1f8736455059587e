package domain

import (
	"errors"
	"time"
)

// Sentiment labels assigned by the analysis service.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

const (
	MaxReviewLength = 1000
	MinRating       = 1
	MaxRating       = 5
)

var ErrReviewNotFound = errors.New("review not found")
var ErrTextRequired = errors.New("review text is required")
var ErrTextTooLong = errors.New("review text exceeds maximum length")
var ErrRatingRange = errors.New("rating must be between 1 and 5")
var ErrSpamFlagRequired = errors.New("spam must be true or false")
var ErrAnalyzerUnavailable = errors.New("analysis service unavailable")

// Review is a user-submitted review together with the enrichment produced by
// the analysis service at creation time.
type Review struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email,omitempty"`
	Text        string    `json:"text"`
	Rating      int       `json:"rating"`
	Sentiment   string    `json:"sentiment"`
	AIScore     float64   `json:"ai_score"`
	Spam        bool      `json:"spam"`
	Problems    []string  `json:"problems"`
	GoodPoints  []string  `json:"good_points"`
	AIUpdatedAt time.Time `json:"ai_updated_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Analysis is the enrichment returned by the analysis service for one review.
type Analysis struct {
	Sentiment  string
	Score      float64
	Spam       bool
	Problems   []string
	GoodPoints []string
}

// LabeledCount pairs a free-text label with how many reviews mention it.
type LabeledCount struct {
	Text  string `json:"text"`
	Count int64  `json:"count"`
}

// ReviewStats aggregates the whole review corpus for the admin dashboard.
type ReviewStats struct {
	TotalReviews  int64            `json:"total_reviews"`
	SpamCount     int64            `json:"spam_count"`
	Sentiments    map[string]int64 `json:"sentiments"`
	AvgAIScore    float64          `json:"avg_ai_score"`
	TopProblems   []LabeledCount   `json:"top_problems"`
	TopGoodPoints []LabeledCount   `json:"top_good_points"`
}
