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

// BookingHandler serves checkout and the admin booking CRUD.
type BookingHandler struct {
	Svc    *application.BookingService
	Logger *logrus.Logger
}

func NewBookingHandler(svc *application.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// CheckoutSession starts payment for a tour on behalf of the caller.
func (h *BookingHandler) CheckoutSession(c *gin.Context) {
	sess, err := h.Svc.CreateCheckoutSession(c.Request.Context(), c.Param("tourId"), middleware.Principal(c))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": sess})
}

func (h *BookingHandler) List(c *gin.Context) {
	opts := query.Parse(c.Request.URL.Query())
	bookings, err := h.Svc.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.List(c, bookings, "bookings")
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

type createBookingRequest struct {
	Tour  string  `json:"tour" binding:"required,uuid"`
	User  string  `json:"user" binding:"required,uuid"`
	Price float64 `json:"price" binding:"required,gt=0"`
	Paid  bool    `json:"paid"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), map[string]any{
		"tour_id": req.Tour,
		"user_id": req.User,
		"price":   req.Price,
		"paid":    req.Paid,
	})
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

type updateBookingRequest struct {
	Price *float64 `json:"price" binding:"omitempty,gt=0"`
	Paid  *bool    `json:"paid"`
}

func (h *BookingHandler) Update(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	cols := map[string]any{}
	setIf(cols, "price", req.Price)
	setIf(cols, "paid", req.Paid)
	if len(cols) == 0 {
		response.Fail(c, http.StatusBadRequest, "nothing to update")
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), c.Param("id"), cols)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
