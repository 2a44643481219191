package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tourbook/internal/application"
	"tourbook/internal/interface/middleware"
	"tourbook/pkg/query"
	"tourbook/pkg/response"
	"tourbook/pkg/validation"
)

// ReviewHandler serves /reviews and the nested /tours/:tourId/reviews routes.
type ReviewHandler struct {
	Svc    *application.ReviewService
	Logger *logrus.Logger
}

func NewReviewHandler(svc *application.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

// List returns all reviews, narrowed to one tour on the nested route.
// On /tours/:id/reviews the id param is the tour id.
func (h *ReviewHandler) List(c *gin.Context) {
	opts := query.Parse(c.Request.URL.Query())
	reviews, err := h.Svc.List(c.Request.Context(), opts, c.Param("id"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.List(c, reviews, "reviews")
}

func (h *ReviewHandler) Get(c *gin.Context) {
	r, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"review": r})
}

type createReviewRequest struct {
	Review string `json:"review" binding:"required,min=10"`
	Rating int    `json:"rating" binding:"required,gte=1,lte=5"`
	Tour   string `json:"tour" binding:"omitempty,uuid"`
}

// Create records a review. Tour id defaults from the nested route and the
// user is always the caller; neither can be forged through the body.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	tourID := c.Param("id")
	if tourID == "" {
		tourID = req.Tour
	}
	if tourID == "" {
		response.Fail(c, http.StatusBadRequest, "tour is required")
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), map[string]any{
		"review":  req.Review,
		"rating":  req.Rating,
		"tour_id": tourID,
		"user_id": middleware.Principal(c).ID,
	})
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"review": r})
}

type updateReviewRequest struct {
	Review *string `json:"review" binding:"omitempty,min=10"`
	Rating *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	cols := map[string]any{}
	setIf(cols, "review", req.Review)
	setIf(cols, "rating", req.Rating)
	if len(cols) == 0 {
		response.Fail(c, http.StatusBadRequest, "nothing to update")
		return
	}
	r, err := h.Svc.Update(c.Request.Context(), c.Param("id"), cols)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"review": r})
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
