package modules

import (
	"github.com/gin-gonic/gin"

	"tourbook/internal/container"
	"tourbook/internal/domain/entity"
	repo "tourbook/internal/domain/repository"
	handlers "tourbook/internal/interface/http"
	"tourbook/internal/interface/middleware"
)

// ReviewModule wires /reviews plus the nested tour review routes.
type ReviewModule struct {
	Handler *handlers.ReviewHandler
	Users   repo.UserRepository
}

func NewReviewModule(h *handlers.ReviewHandler, users repo.UserRepository) *ReviewModule {
	return &ReviewModule{Handler: h, Users: users}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	protect := middleware.Protect(container.GetTokens(), m.Users)

	reviews := rg.Group("/reviews")
	reviews.GET("", m.Handler.List)
	reviews.GET("/:id", m.Handler.Get)
	reviews.POST("", protect, middleware.RestrictTo(entity.RoleUser), m.Handler.Create)
	reviews.PATCH("/:id", protect, middleware.RestrictTo(entity.RoleUser, entity.RoleAdmin), m.Handler.Update)
	reviews.DELETE("/:id", protect, middleware.RestrictTo(entity.RoleUser, entity.RoleAdmin), m.Handler.Delete)

	// Nested under the tour; :id here is the tour id.
	nested := rg.Group("/tours/:id/reviews")
	nested.GET("", m.Handler.List)
	nested.POST("", protect, middleware.RestrictTo(entity.RoleUser), m.Handler.Create)
}
