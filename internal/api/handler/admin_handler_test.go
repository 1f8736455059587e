package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aireviews/review-system/internal/core/domain"
	"github.com/aireviews/review-system/internal/core/ports"
)

type stubAdminService struct {
	listReviews func(ctx context.Context, input ports.ListReviewsInput) (*ports.ListReviewsResult, error)
	markSpam    func(ctx context.Context, reviewID string, spam bool) (*domain.Review, error)
	stats       func(ctx context.Context) (*domain.ReviewStats, error)
	summarize   func(ctx context.Context) (*ports.Summary, error)
}

func (s *stubAdminService) ListReviews(ctx context.Context, input ports.ListReviewsInput) (*ports.ListReviewsResult, error) {
	return s.listReviews(ctx, input)
}

func (s *stubAdminService) MarkSpam(ctx context.Context, reviewID string, spam bool) (*domain.Review, error) {
	return s.markSpam(ctx, reviewID, spam)
}

func (s *stubAdminService) Stats(ctx context.Context) (*domain.ReviewStats, error) {
	return s.stats(ctx)
}

func (s *stubAdminService) Summarize(ctx context.Context) (*ports.Summary, error) {
	return s.summarize(ctx)
}

func TestAdminHandler_ListReviewsQueryParsing(t *testing.T) {
	var gotInput ports.ListReviewsInput
	h := NewAdminHandler(&stubAdminService{
		listReviews: func(_ context.Context, input ports.ListReviewsInput) (*ports.ListReviewsResult, error) {
			gotInput = input
			return &ports.ListReviewsResult{Page: input.Page, Limit: input.Limit}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/admin/reviews?sentiment=negative&spam=true&page=2&limit=10", "")
	if err := h.ListReviews(c); err != nil {
		t.Fatalf("ListReviews returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotInput.Sentiment != domain.SentimentNegative || gotInput.Page != 2 || gotInput.Limit != 10 {
		t.Fatalf("query not parsed: %+v", gotInput)
	}
	if gotInput.Spam == nil || !*gotInput.Spam {
		t.Fatalf("spam filter not parsed: %+v", gotInput)
	}
}

func TestAdminHandler_ListReviewsBadSpam(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		listReviews: func(context.Context, ports.ListReviewsInput) (*ports.ListReviewsResult, error) {
			t.Fatal("service must not be called with an unparseable filter")
			return nil, nil
		},
	})

	c, _ := newTestContext(http.MethodGet, "/admin/reviews?spam=maybe", "")
	err := h.ListReviews(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for spam=maybe, got %v", err)
	}
}

func TestAdminHandler_MarkSpam(t *testing.T) {
	var gotID string
	var gotSpam bool
	h := NewAdminHandler(&stubAdminService{
		markSpam: func(_ context.Context, reviewID string, spam bool) (*domain.Review, error) {
			gotID, gotSpam = reviewID, spam
			return &domain.Review{ID: reviewID, Spam: spam}, nil
		},
	})

	c, rec := newTestContext(http.MethodPatch, "/admin/reviews/rev-1/spam", `{"spam":true}`)
	c.SetParamNames("id")
	c.SetParamValues("rev-1")

	if err := h.MarkSpam(c); err != nil {
		t.Fatalf("MarkSpam returned error: %v", err)
	}
	if rec.Code != http.StatusOK || gotID != "rev-1" || !gotSpam {
		t.Fatalf("unexpected call: id=%q spam=%v code=%d", gotID, gotSpam, rec.Code)
	}
}

func TestAdminHandler_MarkSpamMissingFlag(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		markSpam: func(context.Context, string, bool) (*domain.Review, error) {
			t.Fatal("service must not be called without an explicit flag")
			return nil, nil
		},
	})

	c, _ := newTestContext(http.MethodPatch, "/admin/reviews/rev-1/spam", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("rev-1")

	if err := h.MarkSpam(c); err != domain.ErrSpamFlagRequired {
		t.Fatalf("expected ErrSpamFlagRequired, got %v", err)
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		stats: func(context.Context) (*domain.ReviewStats, error) {
			return &domain.ReviewStats{TotalReviews: 7, SpamCount: 1}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/admin/stats", "")
	if err := h.Stats(c); err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}

	var resp struct {
		Stats domain.ReviewStats `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Stats.TotalReviews != 7 {
		t.Fatalf("unexpected stats: %+v", resp.Stats)
	}
}

func TestAdminHandler_SummaryDegraded(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{
		summarize: func(context.Context) (*ports.Summary, error) {
			return &ports.Summary{Text: "Top reported problems: late delivery.", Degraded: true}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/admin/summary", "")
	if err := h.Summary(c); err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["degraded"] != true {
		t.Fatalf("degraded flag must surface in the response, got %v", resp)
	}
}
