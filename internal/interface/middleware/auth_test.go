package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/domain/entity"
	"tourbook/pkg/apperr"
	"tourbook/pkg/helpers"
	"tourbook/pkg/query"
)

// stubUserRepo serves a single user by id; everything else is unused here.
type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, apperr.ErrNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, apperr.ErrNotFound
}
func (s *stubUserRepo) GetByIDWithPassword(ctx context.Context, id string) (*entity.User, error) {
	return s.GetByID(ctx, id)
}
func (s *stubUserRepo) GetByResetToken(ctx context.Context, digest string, now time.Time) (*entity.User, error) {
	return nil, apperr.ErrNotFound
}
func (s *stubUserRepo) List(ctx context.Context, opts query.Options) ([]entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) Update(ctx context.Context, id string, cols map[string]any) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) UpdatePassword(ctx context.Context, id, hash string, changedAt time.Time) error {
	return nil
}
func (s *stubUserRepo) SetResetToken(ctx context.Context, id, digest string, expires time.Time) error {
	return nil
}
func (s *stubUserRepo) ClearResetToken(ctx context.Context, id string) error { return nil }
func (s *stubUserRepo) Deactivate(ctx context.Context, id string) error      { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id string) error          { return nil }

func guardedRouter(tokens *helpers.TokenManager, users *stubUserRepo, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{Protect(tokens, users)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": Principal(c).ID})
	})
	r.GET("/secure", chain...)
	return r
}

func TestProtectMissingToken(t *testing.T) {
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	r := guardedRouter(tokens, &stubUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"fail"`)
}

func TestProtectBearerToken(t *testing.T) {
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	users := &stubUserRepo{user: &entity.User{ID: "u1", Role: entity.RoleUser}}
	r := guardedRouter(tokens, users)

	token, _, err := tokens.Generate("u1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
}

func TestProtectCookieFallback(t *testing.T) {
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	users := &stubUserRepo{user: &entity.User{ID: "u1", Role: entity.RoleUser}}
	r := guardedRouter(tokens, users)

	token, _, err := tokens.Generate("u1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectBadSignature(t *testing.T) {
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	users := &stubUserRepo{user: &entity.User{ID: "u1"}}
	r := guardedRouter(tokens, users)

	forged, _, err := helpers.NewTokenManager("other-secret", time.Hour).Generate("u1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectVanishedUser(t *testing.T) {
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	r := guardedRouter(tokens, &stubUserRepo{}) // no users

	token, _, err := tokens.Generate("u1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no longer exists")
}

func TestProtectStaleToken(t *testing.T) {
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	changed := time.Now().Add(time.Minute) // password change after token issue
	users := &stubUserRepo{user: &entity.User{ID: "u1", PasswordChangedAt: &changed}}
	r := guardedRouter(tokens, users)

	token, _, err := tokens.Generate("u1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "recently changed password")
}

func TestRestrictTo(t *testing.T) {
	tests := []struct {
		name string
		role string
		want int
	}{
		{"admin allowed", entity.RoleAdmin, http.StatusOK},
		{"lead guide allowed", entity.RoleLeadGuide, http.StatusOK},
		{"plain user forbidden", entity.RoleUser, http.StatusForbidden},
		{"guide forbidden", entity.RoleGuide, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := helpers.NewTokenManager("test-secret", time.Hour)
			users := &stubUserRepo{user: &entity.User{ID: "u1", Role: tt.role}}
			r := guardedRouter(tokens, users, RestrictTo(entity.RoleAdmin, entity.RoleLeadGuide))

			token, _, err := tokens.Generate("u1")
			require.NoError(t, err)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "permission")
			}
		})
	}
}

func TestIsLoggedInNeverAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	users := &stubUserRepo{user: &entity.User{ID: "u1"}}

	r := gin.New()
	r.GET("/open", IsLoggedIn(tokens, users), func(c *gin.Context) {
		if u := Principal(c); u != nil {
			c.JSON(http.StatusOK, gin.H{"id": u.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": nil})
	})

	// anonymous request passes
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":null`)

	// authenticated request resolves the principal
	token, _, err := tokens.Generate("u1")
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
}
