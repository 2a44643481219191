package modules

import (
	"github.com/gin-gonic/gin"

	"tourbook/internal/container"
	"tourbook/internal/domain/entity"
	repo "tourbook/internal/domain/repository"
	handlers "tourbook/internal/interface/http"
	"tourbook/internal/interface/middleware"
)

// BookingModule wires checkout plus the staff-only booking CRUD.
type BookingModule struct {
	Handler *handlers.BookingHandler
	Users   repo.UserRepository
}

func NewBookingModule(h *handlers.BookingHandler, users repo.UserRepository) *BookingModule {
	return &BookingModule{Handler: h, Users: users}
}

func (m *BookingModule) Register(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.Protect(container.GetTokens(), m.Users))

	bookings.GET("/checkout-session/:tourId", m.Handler.CheckoutSession)

	staff := bookings.Group("")
	staff.Use(middleware.RestrictTo(entity.RoleAdmin, entity.RoleLeadGuide))
	{
		staff.GET("", m.Handler.List)
		staff.GET("/:id", m.Handler.Get)
		staff.POST("", m.Handler.Create)
		staff.PATCH("/:id", m.Handler.Update)
		staff.DELETE("/:id", m.Handler.Delete)
	}
}
