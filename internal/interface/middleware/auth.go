package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tourbook/internal/domain/entity"
	repo "tourbook/internal/domain/repository"
	"tourbook/pkg/apperr"
	"tourbook/pkg/helpers"
	"tourbook/pkg/response"
)

// PrincipalKey is where the guard stores the authenticated *entity.User.
const PrincipalKey = "currentUser"

// Principal returns the authenticated user set by Protect.
func Principal(c *gin.Context) *entity.User {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// tokenFromRequest reads the session token: Authorization bearer first,
// then the jwt cookie.
func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if tok, err := c.Cookie(helpers.SessionCookieName); err == nil {
		return tok
	}
	return ""
}

// resolvePrincipal runs the full credential check: parse, user still exists
// and is active, token not older than the last password change.
func resolvePrincipal(c *gin.Context, tokens *helpers.TokenManager, users repo.UserRepository) (*entity.User, error) {
	tok := tokenFromRequest(c)
	if tok == "" {
		return nil, apperr.ErrUnauthenticated
	}
	claims, err := tokens.Parse(tok)
	if err != nil {
		return nil, err
	}
	u, err := users.GetByID(c.Request.Context(), claims.Subject)
	if err != nil {
		return nil, apperr.Unauthenticated("the user belonging to this token no longer exists")
	}
	if claims.IssuedAt != nil && u.ChangedPasswordAfter(claims.IssuedAt.Time) {
		return nil, apperr.Unauthenticated("user recently changed password, please log in again")
	}
	return u, nil
}

// Protect rejects the request unless it carries a valid session token for a
// live user. The user is stored in the context for downstream handlers.
func Protect(tokens *helpers.TokenManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := resolvePrincipal(c, tokens, users)
		if err != nil {
			status, msg := apperr.StatusFor(err)
			if status != http.StatusUnauthorized {
				status, msg = http.StatusUnauthorized, apperr.ErrUnauthenticated.Error()
			}
			response.AbortFail(c, status, msg)
			return
		}
		c.Set(PrincipalKey, u)
		c.Next()
	}
}

// IsLoggedIn performs the same checks as Protect but never aborts; it only
// sets the principal when the token holds up.
func IsLoggedIn(tokens *helpers.TokenManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, err := resolvePrincipal(c, tokens, users); err == nil {
			c.Set(PrincipalKey, u)
		}
		c.Next()
	}
}

// RestrictTo allows only the named roles past. Membership is explicit;
// there is no role hierarchy. Must run after Protect.
func RestrictTo(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		u := Principal(c)
		if u == nil || !allowed[u.Role] {
			response.AbortFail(c, http.StatusForbidden, apperr.ErrForbidden.Error())
			return
		}
		c.Next()
	}
}
