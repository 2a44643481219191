package application

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tourbook/internal/domain/entity"
	repo "tourbook/internal/domain/repository"
	"tourbook/pkg/apperr"
	"tourbook/pkg/helpers"
)

// Mailer is the outbound-email collaborator the auth flows depend on.
// Welcome mail may be deferred; reset mail must report delivery failure.
type Mailer interface {
	SendWelcome(ctx context.Context, to, name, accountURL string) error
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
}

// Session is an issued credential plus its expiry, returned to the handler
// so it can mirror the token into the cookie.
type Session struct {
	Token   string
	Expires time.Time
}

// AuthService owns signup, login and the password lifecycle.
type AuthService struct {
	Users      repo.UserRepository
	Tokens     *helpers.TokenManager
	Mail       Mailer
	Logger     *logrus.Logger
	BcryptCost int
	BaseURL    string
	ResetTTL   time.Duration
}

func NewAuthService(users repo.UserRepository, tokens *helpers.TokenManager, mail Mailer, logger *logrus.Logger, bcryptCost int, baseURL string, resetTTL time.Duration) *AuthService {
	return &AuthService{
		Users:      users,
		Tokens:     tokens,
		Mail:       mail,
		Logger:     logger,
		BcryptCost: bcryptCost,
		BaseURL:    baseURL,
		ResetTTL:   resetTTL,
	}
}

// Signup registers a user and logs them in. The caller-provided role is
// ignored; everyone starts as a regular user.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*entity.User, Session, error) {
	hash, err := helpers.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, Session{}, err
	}
	u, err := s.Users.Create(ctx, &entity.User{
		Name:     name,
		Email:    strings.ToLower(email),
		Role:     entity.RoleUser,
		Password: hash,
	})
	if err != nil {
		return nil, Session{}, err
	}

	// Welcome mail is best-effort; signup never fails on it.
	if s.Mail != nil {
		if mErr := s.Mail.SendWelcome(ctx, u.Email, u.Name, s.BaseURL+"/me"); mErr != nil {
			s.Logger.WithError(mErr).WithField("user_id", u.ID).Warn("welcome email not sent")
		}
	}

	sess, err := s.issue(u.ID)
	if err != nil {
		return nil, Session{}, err
	}
	u.Password = ""
	return u, sess, nil
}

// Login verifies email/password. The same message covers an unknown email
// and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, Session, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, Session{}, apperr.Unauthenticated("incorrect email or password")
	}
	sess, err := s.issue(u.ID)
	if err != nil {
		return nil, Session{}, err
	}
	u.Password = ""
	return u, sess, nil
}

// ForgotPassword stores a hashed one-time reset secret and mails the
// plaintext. Delivery is synchronous: when the mail cannot be sent the
// stored secret is cleared again so the user is not left with a dead token.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return apperr.NotFound("there is no user with that email address")
	}

	plain, digest, err := helpers.NewResetSecret()
	if err != nil {
		return err
	}
	if err := s.Users.SetResetToken(ctx, u.ID, digest, time.Now().Add(s.ResetTTL)); err != nil {
		return err
	}

	resetURL := s.BaseURL + "/api/v1/users/resetPassword/" + plain
	if err := s.Mail.SendPasswordReset(ctx, u.Email, u.Name, resetURL); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset email failed, clearing token")
		if cErr := s.Users.ClearResetToken(ctx, u.ID); cErr != nil {
			s.Logger.WithError(cErr).WithField("user_id", u.ID).Error("clear reset token failed")
		}
		return apperr.New(http.StatusInternalServerError, apperr.ErrDelivery.Error(), apperr.ErrDelivery)
	}
	return nil
}

// ResetPassword consumes a reset token: the secret is matched by digest and
// expiry, the new password stored with the changed-at skew, and the reset
// fields cleared in the same statement so the token can never be replayed.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (*entity.User, Session, error) {
	digest := helpers.HashResetSecret(token)
	u, err := s.Users.GetByResetToken(ctx, digest, time.Now())
	if err != nil {
		return nil, Session{}, apperr.BadRequest("token is invalid or has expired")
	}
	if err := s.changePassword(ctx, u.ID, password); err != nil {
		return nil, Session{}, err
	}
	sess, err := s.issue(u.ID)
	if err != nil {
		return nil, Session{}, err
	}
	u.Password = ""
	return u, sess, nil
}

// UpdatePassword changes the password of a logged-in user after re-checking
// the current one, then issues a fresh session so the caller is not logged
// out by their own staleness check.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, password string) (*entity.User, Session, error) {
	u, err := s.Users.GetByIDWithPassword(ctx, userID)
	if err != nil {
		return nil, Session{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return nil, Session{}, apperr.Unauthenticated("your current password is wrong")
	}
	if err := s.changePassword(ctx, u.ID, password); err != nil {
		return nil, Session{}, err
	}
	sess, err := s.issue(u.ID)
	if err != nil {
		return nil, Session{}, err
	}
	u.Password = ""
	return u, sess, nil
}

func (s *AuthService) issue(userID string) (Session, error) {
	token, exp, err := s.Tokens.Generate(userID)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, Expires: exp}, nil
}

// changePassword hashes and stores a new password. changed-at is skewed one
// second into the past so a token issued in the same second still reads as
// older than the change.
func (s *AuthService) changePassword(ctx context.Context, userID, password string) error {
	hash, err := helpers.HashPassword(password, s.BcryptCost)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, userID, hash, time.Now().Add(-time.Second))
}
