package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tourbook/internal/application"
	"tourbook/pkg/query"
	"tourbook/pkg/response"
	"tourbook/pkg/validation"
)

// TourHandler exposes the tour catalog: CRUD, the canned aliases and the
// aggregation endpoints.
type TourHandler struct {
	Svc    *application.TourService
	Logger *logrus.Logger
}

func NewTourHandler(svc *application.TourService, logger *logrus.Logger) *TourHandler {
	return &TourHandler{Svc: svc, Logger: logger}
}

func (h *TourHandler) List(c *gin.Context) {
	opts := query.Parse(c.Request.URL.Query())
	tours, err := h.Svc.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.List(c, tours, "tours")
}

// TopTours is the "/top-5-cheap" alias: it presets the list parameters and
// reuses the plain list path.
func (h *TourHandler) TopTours(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("limit", "5")
	q.Set("sort", "-ratingsAverage,price")
	q.Set("fields", "name,price,ratingsAverage,summary,difficulty")
	c.Request.URL.RawQuery = q.Encode()
	h.List(c)
}

func (h *TourHandler) Get(c *gin.Context) {
	t, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tour": t})
}

type createTourRequest struct {
	Name          string      `json:"name" binding:"required,min=10,max=40"`
	Duration      int         `json:"duration" binding:"required,gte=1"`
	MaxGroupSize  int         `json:"maxGroupSize" binding:"required,gte=1"`
	Difficulty    string      `json:"difficulty" binding:"required,oneof=easy medium difficult"`
	Price         float64     `json:"price" binding:"required,gt=0"`
	PriceDiscount *float64    `json:"priceDiscount" binding:"omitempty,ltfield=Price"`
	Summary       string      `json:"summary" binding:"required"`
	Description   string      `json:"description"`
	ImageCover    string      `json:"imageCover" binding:"required"`
	Images        []string    `json:"images"`
	StartDates    []time.Time `json:"startDates"`
	Secret        bool        `json:"secret"`
}

func (h *TourHandler) Create(c *gin.Context) {
	var req createTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	cols := map[string]any{
		"name":           req.Name,
		"duration":       req.Duration,
		"max_group_size": req.MaxGroupSize,
		"difficulty":     req.Difficulty,
		"price":          req.Price,
		"summary":        req.Summary,
		"description":    req.Description,
		"image_cover":    req.ImageCover,
		"images":         req.Images,
		"start_dates":    req.StartDates,
		"secret":         req.Secret,
	}
	if req.PriceDiscount != nil {
		cols["price_discount"] = *req.PriceDiscount
	}
	t, err := h.Svc.Create(c.Request.Context(), cols)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"tour": t})
}

type updateTourRequest struct {
	Name          *string      `json:"name" binding:"omitempty,min=10,max=40"`
	Duration      *int         `json:"duration" binding:"omitempty,gte=1"`
	MaxGroupSize  *int         `json:"maxGroupSize" binding:"omitempty,gte=1"`
	Difficulty    *string      `json:"difficulty" binding:"omitempty,oneof=easy medium difficult"`
	Price         *float64     `json:"price" binding:"omitempty,gt=0"`
	PriceDiscount *float64     `json:"priceDiscount"`
	Summary       *string      `json:"summary"`
	Description   *string      `json:"description"`
	ImageCover    *string      `json:"imageCover"`
	Images        *[]string    `json:"images"`
	StartDates    *[]time.Time `json:"startDates"`
	Secret        *bool        `json:"secret"`
}

func (h *TourHandler) Update(c *gin.Context) {
	var req updateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	cols := map[string]any{}
	setIf(cols, "name", req.Name)
	setIf(cols, "duration", req.Duration)
	setIf(cols, "max_group_size", req.MaxGroupSize)
	setIf(cols, "difficulty", req.Difficulty)
	setIf(cols, "price", req.Price)
	setIf(cols, "price_discount", req.PriceDiscount)
	setIf(cols, "summary", req.Summary)
	setIf(cols, "description", req.Description)
	setIf(cols, "image_cover", req.ImageCover)
	setIf(cols, "images", req.Images)
	setIf(cols, "start_dates", req.StartDates)
	setIf(cols, "secret", req.Secret)
	if len(cols) == 0 {
		response.Fail(c, http.StatusBadRequest, "nothing to update")
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), c.Param("id"), cols)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tour": t})
}

func (h *TourHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *TourHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *TourHandler) MonthlyPlan(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "year must be a number")
		return
	}
	plan, err := h.Svc.MonthlyPlan(c.Request.Context(), year)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plan": plan})
}

func (h *TourHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "q is required")
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.List(c, hits, "tours")
}

// setIf copies a pointer field into the column map when set.
func setIf[T any](cols map[string]any, key string, v *T) {
	if v != nil {
		cols[key] = *v
	}
}
