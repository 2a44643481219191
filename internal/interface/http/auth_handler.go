package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tourbook/internal/application"
	"tourbook/internal/interface/middleware"
	"tourbook/pkg/helpers"
	"tourbook/pkg/response"
	"tourbook/pkg/validation"
)

// AuthHandler exposes signup, login/logout and the password lifecycle.
type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type signupRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	u, sess, err := h.Svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.Expires)
	response.Success(c, http.StatusCreated, gin.H{"user": u, "token": sess.Token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	u, sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.Expires)
	response.Success(c, http.StatusOK, gin.H{"user": u, "token": sess.Token})
}

// Logout overwrites the session cookie; the token itself simply ages out.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.ClearSession(c)
	response.Success(c, http.StatusOK, nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "token sent to email"})
}

type resetPasswordRequest struct {
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	u, sess, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.Expires)
	response.Success(c, http.StatusOK, gin.H{"user": u, "token": sess.Token})
}

type updatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" binding:"required"`
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	principal := middleware.Principal(c)
	u, sess, err := h.Svc.UpdatePassword(c.Request.Context(), principal.ID, req.PasswordCurrent, req.Password)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.Expires)
	response.Success(c, http.StatusOK, gin.H{"user": u, "token": sess.Token})
}
