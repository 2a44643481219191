package repository

import (
	"context"
	"time"

	"tourbook/internal/domain/entity"
	"tourbook/pkg/query"
)

// UserRepository defines user-related database operations. All read paths
// filter out soft-deleted (inactive) users.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail returns the user including the password hash.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByIDWithPassword returns the user including the password hash.
	GetByIDWithPassword(ctx context.Context, id string) (*entity.User, error)
	// GetByResetToken matches the stored reset digest with an unexpired window.
	GetByResetToken(ctx context.Context, digest string, now time.Time) (*entity.User, error)
	List(ctx context.Context, opts query.Options) ([]entity.User, error)
	// Update mutates the given columns; password changes go through
	// UpdatePassword so the changed-at skew is never skipped.
	Update(ctx context.Context, id string, cols map[string]any) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, hash string, changedAt time.Time) error
	SetResetToken(ctx context.Context, id, digest string, expires time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	// Deactivate flips the active flag; users are never hard-deleted by
	// self-service flows.
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
