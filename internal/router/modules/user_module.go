package modules

import (
	"github.com/gin-gonic/gin"

	"tourbook/internal/container"
	"tourbook/internal/domain/entity"
	repo "tourbook/internal/domain/repository"
	handlers "tourbook/internal/interface/http"
	"tourbook/internal/interface/middleware"
)

// UserModule wires the self-service me-routes and the admin user CRUD.
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repo.UserRepository
}

func NewUserModule(h *handlers.UserHandler, users repo.UserRepository) *UserModule {
	return &UserModule{Handler: h, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.Protect(container.GetTokens(), m.Users))

	users.GET("/me", m.Handler.Me)
	users.PATCH("/updateMe", m.Handler.UpdateMe)
	users.DELETE("/deleteMe", m.Handler.DeleteMe)

	admin := users.Group("")
	admin.Use(middleware.RestrictTo(entity.RoleAdmin))
	{
		admin.GET("", m.Handler.List)
		admin.GET("/:id", m.Handler.Get)
		admin.PATCH("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
