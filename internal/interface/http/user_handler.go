package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tourbook/internal/application"
	"tourbook/internal/interface/middleware"
	"tourbook/pkg/query"
	"tourbook/pkg/response"
	"tourbook/pkg/validation"
)

// UserHandler covers the self-service me-routes and admin user management.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"user": middleware.Principal(c)})
}

type updateMeRequest struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email" binding:"omitempty,email"`
}

// UpdateMe edits the caller's own profile. A multipart request may carry a
// "photo" file which is stored in the bucket; password fields are rejected
// so nobody slips a credential change past the dedicated flow.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	principal := middleware.Principal(c)

	var req updateMeRequest
	var photoURL string

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			response.Fail(c, http.StatusBadRequest, validation.Message(err))
			return
		}
		if file, err := c.FormFile("photo"); err == nil {
			f, err := file.Open()
			if err != nil {
				response.Error(c, h.Logger, err)
				return
			}
			defer func() { _ = f.Close() }()
			url, err := h.Svc.UploadPhoto(c.Request.Context(), principal.ID, file.Filename, file.Header.Get("Content-Type"), f)
			if err != nil {
				response.Error(c, h.Logger, err)
				return
			}
			photoURL = url
		}
	} else {
		var raw map[string]any
		if err := c.ShouldBindBodyWithJSON(&raw); err != nil {
			response.Fail(c, http.StatusBadRequest, "invalid payload")
			return
		}
		if _, ok := raw["password"]; ok {
			response.Fail(c, http.StatusBadRequest, "this route is not for password updates, please use /updatePassword")
			return
		}
		if err := c.ShouldBindBodyWithJSON(&req); err != nil {
			response.Fail(c, http.StatusBadRequest, validation.Message(err))
			return
		}
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), principal.ID, application.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
		Photo: photoURL,
	})
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// DeleteMe soft-deletes the account.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.Svc.Deactivate(c.Request.Context(), middleware.Principal(c).ID); err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *UserHandler) List(c *gin.Context) {
	opts := query.Parse(c.Request.URL.Query())
	users, err := h.Svc.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.List(c, users, "users")
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

type adminUpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Role  string `json:"role" binding:"omitempty,oneof=user guide lead-guide admin"`
	Photo string `json:"photo"`
}

func (h *UserHandler) Update(c *gin.Context) {
	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	cols := map[string]any{}
	if req.Name != "" {
		cols["name"] = req.Name
	}
	if req.Email != "" {
		cols["email"] = strings.ToLower(req.Email)
	}
	if req.Role != "" {
		cols["role"] = req.Role
	}
	if req.Photo != "" {
		cols["photo"] = req.Photo
	}
	u, err := h.Svc.AdminUpdate(c.Request.Context(), c.Param("id"), cols)
	if err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
