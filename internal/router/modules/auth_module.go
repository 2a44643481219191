package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"tourbook/internal/container"
	repo "tourbook/internal/domain/repository"
	handlers "tourbook/internal/interface/http"
	"tourbook/internal/interface/middleware"
)

// AuthModule wires signup/login/logout and the password lifecycle under /users.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repo.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, users repo.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get tight per-IP limits; forgot-password also per
	// path so one IP cannot farm reset mails.
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, 15*time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/users")
	users.POST("/signup", loginLimiter, m.Handler.Signup)
	users.POST("/login", loginLimiter, m.Handler.Login)
	users.GET("/logout", m.Handler.Logout)
	users.POST("/forgetPassword", forgotLimiter, m.Handler.ForgotPassword)
	users.PATCH("/resetPassword/:token", m.Handler.ResetPassword)

	protected := users.Group("")
	protected.Use(middleware.Protect(container.GetTokens(), m.Users))
	protected.PATCH("/updatePassword", m.Handler.UpdatePassword)
}
