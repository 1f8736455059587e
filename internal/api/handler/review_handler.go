package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aireviews/review-system/internal/api/metrics"
	"github.com/aireviews/review-system/internal/core/domain"
	"github.com/aireviews/review-system/internal/core/ports"
)

// ReviewHandler exposes the user-facing review endpoints.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	Text   string `json:"text"   validate:"required,max=1000"`
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
}

type reviewResponse struct {
	Success bool           `json:"success"`
	Review  *domain.Review `json:"review"`
}

type reviewListResponse struct {
	Success bool            `json:"success"`
	Reviews []domain.Review `json:"reviews"`
}

type deletedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Create submits a new review for the authenticated user.
//
// @Summary      Submit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReviewRequest  true  "Review text and rating"
// @Success      200   {object}  reviewResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.service.Create(c.Request().Context(), ports.CreateReviewInput{
		User:   user,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return err
	}

	metrics.ReviewsCreatedTotal.WithLabelValues(review.Sentiment).Inc()
	return c.JSON(http.StatusOK, reviewResponse{Success: true, Review: review})
}

// ListAll returns all reviews, newest first. Admin-gated at the router.
//
// @Summary      List all reviews
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reviewListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /reviews [get]
func (h *ReviewHandler) ListAll(c echo.Context) error {
	reviews, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return c.JSON(http.StatusOK, reviewListResponse{Success: true, Reviews: reviews})
}

// MyLatest returns the caller's most recent review.
//
// @Summary      Get my latest review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reviewResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /reviews/my-latest [get]
func (h *ReviewHandler) MyLatest(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	review, err := h.service.MyLatest(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviewResponse{Success: true, Review: review})
}

// Update edits the text and rating of a review owned by the caller.
//
// @Summary      Update my review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Review id"
// @Param        body  body      createReviewRequest  true  "New text and rating"
// @Success      200   {object}  reviewResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.service.Update(c.Request().Context(), ports.UpdateReviewInput{
		User:     user,
		ReviewID: c.Param("id"),
		Text:     req.Text,
		Rating:   req.Rating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviewResponse{Success: true, Review: review})
}

// Delete removes a review owned by the caller.
//
// @Summary      Delete my review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Review id"
// @Success      200  {object}  deletedResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{Success: true, Message: "review deleted"})
}
