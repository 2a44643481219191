package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tourbook/internal/domain/entity"
	repo "tourbook/internal/domain/repository"
	"tourbook/pkg/apperr"
	"tourbook/pkg/helpers"
	"tourbook/pkg/query"
)

// UserService covers the self-service profile routes and the admin-only
// user administration.
type UserService struct {
	Users     repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(users repo.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

// ProfileUpdate is the self-service subset of mutable fields. Password and
// role changes have their own flows and are never accepted here.
type ProfileUpdate struct {
	Name  string
	Email string
	Photo string
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.Users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, opts query.Options) ([]entity.User, error) {
	return s.Users.List(ctx, opts)
}

// UpdateProfile applies a user's own edits.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*entity.User, error) {
	cols := map[string]any{}
	if upd.Name != "" {
		cols["name"] = upd.Name
	}
	if upd.Email != "" {
		cols["email"] = strings.ToLower(upd.Email)
	}
	if upd.Photo != "" {
		cols["photo"] = upd.Photo
	}
	if len(cols) == 0 {
		return nil, apperr.BadRequest("nothing to update")
	}
	return s.Users.Update(ctx, id, cols)
}

// UploadPhoto stores a profile image in the bucket and returns its public URL.
func (s *UserService) UploadPhoto(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error) {
	if s.GCS == nil {
		return "", apperr.BadRequest("photo upload is not configured")
	}
	ext := filepath.Ext(filename)
	object := "users/" + userID + "/" + uuid.NewString() + ext
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, object, contentType, r)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("photo upload failed")
		return "", err
	}
	return url, nil
}

// Deactivate soft-deletes the caller's own account. The row stays for
// bookings and reviews; every read path filters it out.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	return s.Users.Deactivate(ctx, id)
}

// AdminUpdate edits another user's record, including the role.
func (s *UserService) AdminUpdate(ctx context.Context, id string, cols map[string]any) (*entity.User, error) {
	if len(cols) == 0 {
		return nil, apperr.BadRequest("nothing to update")
	}
	return s.Users.Update(ctx, id, cols)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.Users.Delete(ctx, id)
}
