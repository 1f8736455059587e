// Package ai is the HTTP client for the external review-analysis service.
// Every call carries a bounded timeout so a stalled dependency cannot hold a
// request task; failures map to domain.ErrAnalyzerUnavailable and are never
// retried here.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aireviews/review-system/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the analysis service endpoint settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.Analyzer against the analysis service's JSON API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Sentiment  string   `json:"sentiment"`
	Score      float64  `json:"score"`
	Spam       bool     `json:"spam"`
	Problems   []string `json:"problems"`
	GoodPoints []string `json:"goodPoints"`
}

// Analyze submits a review text to POST /analyze.
func (c *Client) Analyze(ctx context.Context, text string) (*domain.Analysis, error) {
	var resp analyzeResponse
	if err := c.post(ctx, "/analyze", analyzeRequest{Text: text}, &resp); err != nil {
		return nil, err
	}

	return &domain.Analysis{
		Sentiment:  normalizeSentiment(resp.Sentiment),
		Score:      clampScore(resp.Score),
		Spam:       resp.Spam,
		Problems:   resp.Problems,
		GoodPoints: resp.GoodPoints,
	}, nil
}

type insightsRequest struct {
	Problems   []string `json:"problems"`
	GoodPoints []string `json:"goodPoints"`
}

type insightsResponse struct {
	Summary string `json:"summary"`
}

// Summarize submits aggregated labels to POST /insights.
func (c *Client) Summarize(ctx context.Context, problems, goodPoints []string) (string, error) {
	var resp insightsResponse
	if err := c.post(ctx, "/insights", insightsRequest{Problems: problems, GoodPoints: goodPoints}, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAnalyzerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", domain.ErrAnalyzerUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrAnalyzerUnavailable, err)
	}
	return nil
}

// normalizeSentiment guards against off-contract labels from the service.
func normalizeSentiment(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case domain.SentimentPositive:
		return domain.SentimentPositive
	case domain.SentimentNegative:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
