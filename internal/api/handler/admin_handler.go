package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aireviews/review-system/internal/api/metrics"
	"github.com/aireviews/review-system/internal/core/domain"
	"github.com/aireviews/review-system/internal/core/ports"
)

// AdminHandler exposes the moderation and analytics endpoints.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type markSpamRequest struct {
	Spam *bool `json:"spam"`
}

type adminListResponse struct {
	Success bool            `json:"success"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	Reviews []domain.Review `json:"reviews"`
}

type statsResponse struct {
	Success bool                `json:"success"`
	Stats   *domain.ReviewStats `json:"stats"`
}

type summaryResponse struct {
	Success  bool   `json:"success"`
	Summary  string `json:"summary"`
	Degraded bool   `json:"degraded,omitempty"`
}

// ListReviews returns a filtered, paginated moderation view.
//
// @Summary      List reviews with filters and pagination
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        sentiment  query     string  false  "Filter by sentiment (positive|neutral|negative)"
// @Param        spam       query     bool    false  "Filter by spam flag"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Page size (default 20)"
// @Success      200        {object}  adminListResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /admin/reviews [get]
func (h *AdminHandler) ListReviews(c echo.Context) error {
	input := ports.ListReviewsInput{
		Sentiment: c.QueryParam("sentiment"),
	}

	if raw := c.QueryParam("spam"); raw != "" {
		spam, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "spam must be true or false")
		}
		input.Spam = &spam
	}
	if raw := c.QueryParam("page"); raw != "" {
		input.Page, _ = strconv.Atoi(raw)
	}
	if raw := c.QueryParam("limit"); raw != "" {
		input.Limit, _ = strconv.Atoi(raw)
	}

	result, err := h.service.ListReviews(c.Request().Context(), input)
	if err != nil {
		return err
	}

	reviews := result.Reviews
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return c.JSON(http.StatusOK, adminListResponse{
		Success: true,
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
		Reviews: reviews,
	})
}

// MarkSpam sets or clears the spam flag on a review.
//
// @Summary      Mark or unmark a review as spam
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Review id"
// @Param        body  body      markSpamRequest  true  "Spam flag"
// @Success      200   {object}  reviewResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/reviews/{id}/spam [patch]
func (h *AdminHandler) MarkSpam(c echo.Context) error {
	var req markSpamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Spam == nil {
		return domain.ErrSpamFlagRequired
	}

	review, err := h.service.MarkSpam(c.Request().Context(), c.Param("id"), *req.Spam)
	if err != nil {
		return err
	}

	metrics.SpamMarksTotal.WithLabelValues(strconv.FormatBool(*req.Spam)).Inc()
	return c.JSON(http.StatusOK, reviewResponse{Success: true, Review: review})
}

// Stats returns corpus-wide aggregates.
//
// @Summary      Review statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Success: true, Stats: stats})
}

// Summary returns the condensed feedback digest, degrading to a locally
// computed fallback when the analysis service is unreachable.
//
// @Summary      AI feedback summary
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  summaryResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/summary [get]
func (h *AdminHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summarize(c.Request().Context())
	if err != nil {
		return err
	}

	if summary.Degraded {
		metrics.SummaryFallbacksTotal.Inc()
	}

	return c.JSON(http.StatusOK, summaryResponse{
		Success:  true,
		Summary:  summary.Text,
		Degraded: summary.Degraded,
	})
}
