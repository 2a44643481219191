package modules

import (
	"github.com/gin-gonic/gin"

	"tourbook/internal/container"
	"tourbook/internal/domain/entity"
	repo "tourbook/internal/domain/repository"
	handlers "tourbook/internal/interface/http"
	"tourbook/internal/interface/middleware"
)

// TourModule wires the tour catalog. Reads are public; mutations and the
// planning endpoint are staff-only.
type TourModule struct {
	Handler *handlers.TourHandler
	Users   repo.UserRepository
}

func NewTourModule(h *handlers.TourHandler, users repo.UserRepository) *TourModule {
	return &TourModule{Handler: h, Users: users}
}

func (m *TourModule) Register(rg *gin.RouterGroup) {
	protect := middleware.Protect(container.GetTokens(), m.Users)

	tours := rg.Group("/tours")
	tours.GET("", m.Handler.List)
	tours.GET("/top-5-cheap", m.Handler.TopTours)
	tours.GET("/tour-stats", m.Handler.Stats)
	tours.GET("/search", m.Handler.Search)
	tours.GET("/monthly-plan/:year", protect,
		middleware.RestrictTo(entity.RoleAdmin, entity.RoleLeadGuide, entity.RoleGuide),
		m.Handler.MonthlyPlan)
	tours.GET("/:id", m.Handler.Get)

	staff := tours.Group("")
	staff.Use(protect, middleware.RestrictTo(entity.RoleAdmin, entity.RoleLeadGuide))
	{
		staff.POST("", m.Handler.Create)
		staff.PATCH("/:id", m.Handler.Update)
		staff.DELETE("/:id", m.Handler.Delete)
	}
}
