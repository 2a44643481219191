package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourbook/internal/domain/entity"
	"tourbook/internal/domain/repository"
	"tourbook/pkg/apperr"
	"tourbook/pkg/query"
)

var userMeta = Meta{
	Table: "users",
	Fields: map[string]Field{
		"id":        {Column: "id"},
		"name":      {Column: "name"},
		"email":     {Column: "email"},
		"photo":     {Column: "photo"},
		"role":      {Column: "role"},
		"createdAt": {Column: "created_at", Cast: "timestamptz"},
		"updatedAt": {Column: "updated_at", Cast: "timestamptz"},
	},
	Select:      []string{"id", "name", "email", "photo", "role", "createdAt", "updatedAt"},
	DefaultSort: "created_at DESC",
}

// credentialColumns is the full row including the password hash and reset
// fields; only the bespoke lookups below select it.
const credentialColumns = `id, name, email, photo, role, password,
	password_changed_at, password_reset_token, password_reset_expires,
	active, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
	res  *Resource[entity.User]
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool, res: NewResource[entity.User](pool, userMeta)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	photo := u.Photo
	if photo == "" {
		photo = "default.jpg"
	}
	return r.res.Insert(ctx, map[string]any{
		"name":     u.Name,
		"email":    strings.ToLower(u.Email),
		"photo":    photo,
		"role":     u.Role,
		"password": u.Password,
	})
}

func (r *UserRepository) getOne(ctx context.Context, where string, args ...any) (*entity.User, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+credentialColumns+" FROM users WHERE active AND "+where, args...)
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[entity.User])
	if err != nil {
		return nil, apperr.FromPG(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := r.getOne(ctx, "id = $1", id)
	if err != nil {
		return nil, err
	}
	u.Password = ""
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "email = $1", strings.ToLower(email))
}

func (r *UserRepository) GetByIDWithPassword(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *UserRepository) GetByResetToken(ctx context.Context, digest string, now time.Time) (*entity.User, error) {
	return r.getOne(ctx, "password_reset_token = $1 AND password_reset_expires > $2", digest, now)
}

func (r *UserRepository) List(ctx context.Context, opts query.Options) ([]entity.User, error) {
	return r.res.List(ctx, opts, map[string]any{"active": true})
}

func (r *UserRepository) Update(ctx context.Context, id string, cols map[string]any) (*entity.User, error) {
	if email, ok := cols["email"].(string); ok {
		cols["email"] = strings.ToLower(email)
	}
	return r.res.UpdateByID(ctx, id, cols)
}

// UpdatePassword sets the new hash and the changed-at timestamp, and clears
// any pending reset secret so it can never be replayed.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string, changedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password = $1,
		    password_changed_at = $2,
		    password_reset_token = NULL,
		    password_reset_expires = NULL,
		    updated_at = now()
		WHERE id = $3
	`, hash, changedAt, id)
	if err != nil {
		return apperr.FromPG(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, digest string, expires time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_reset_token = $1, password_reset_expires = $2, updated_at = now()
		WHERE id = $3
	`, digest, expires, id)
	if err != nil {
		return apperr.FromPG(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_reset_token = NULL, password_reset_expires = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	return apperr.FromPG(err)
}

func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return apperr.FromPG(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.res.DeleteByID(ctx, id)
}

var _ repository.UserRepository = (*UserRepository)(nil)
