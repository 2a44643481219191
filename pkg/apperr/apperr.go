package apperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrValidation is returned when a request payload fails validation.
	ErrValidation = errors.New("invalid input data")
	// ErrUnauthenticated is returned for missing, invalid, expired or stale credentials.
	ErrUnauthenticated = errors.New("you are not logged in, please log in to get access")
	// ErrForbidden is returned when the principal's role is not permitted.
	ErrForbidden = errors.New("you do not have permission to perform this action")
	// ErrNotFound is returned when no matching document exists.
	ErrNotFound = errors.New("no document found with that ID")
	// ErrConflict is returned on uniqueness violations.
	ErrConflict = errors.New("duplicate field value")
	// ErrDelivery is returned when an outbound email could not be sent.
	ErrDelivery = errors.New("there was an error sending the email, try again later")
)

// Error carries an HTTP status with a caller-safe message. It wraps one of
// the sentinel errors above so services can still errors.Is against them.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// New builds an operational error with an explicit status and message.
func New(status int, message string, sentinel error) *Error {
	return &Error{Status: status, Message: message, Err: sentinel}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message, ErrValidation)
}

func Unauthenticated(message string) *Error {
	return New(http.StatusUnauthorized, message, ErrUnauthenticated)
}

// StatusFor maps an error to the HTTP status and safe message for the
// response envelope. Unknown errors map to a generic 500.
func StatusFor(err error) (int, string) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status, ae.Message
	}
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ErrDelivery):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, "something went very wrong"
	}
}

// FromPG translates pgx/postgres errors into the taxonomy. Unique violations
// become Conflict (duplicate email, duplicate review per user/tour), foreign
// key violations become validation failures, no rows becomes NotFound.
func FromPG(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrConflict
		case "23503", "23514", "22P02":
			return ErrValidation
		}
	}
	return err
}

// IsOperational reports whether the error is part of the taxonomy, i.e. safe
// to surface to the caller verbatim.
func IsOperational(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return true
	}
	for _, s := range []error{ErrValidation, ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrConflict, ErrDelivery} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
