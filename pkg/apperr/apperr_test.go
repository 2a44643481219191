package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", ErrValidation, http.StatusBadRequest, "invalid input data"},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, ErrUnauthenticated.Error()},
		{"forbidden", ErrForbidden, http.StatusForbidden, ErrForbidden.Error()},
		{"not found", ErrNotFound, http.StatusNotFound, "no document found with that ID"},
		{"conflict", ErrConflict, http.StatusConflict, "duplicate field value"},
		{"delivery", ErrDelivery, http.StatusInternalServerError, ErrDelivery.Error()},
		{"wrapped with custom message", NotFound("no tour found with that ID"), http.StatusNotFound, "no tour found with that ID"},
		{"unknown is generic 500", errors.New("pq: connection refused"), http.StatusInternalServerError, "something went very wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := StatusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestWrappedErrorKeepsSentinel(t *testing.T) {
	err := Unauthenticated("incorrect email or password")

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, "incorrect email or password", err.Error())

	status, msg := StatusFor(err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "incorrect email or password", msg)
}

func TestFromPG(t *testing.T) {
	assert.Nil(t, FromPG(nil))
	assert.ErrorIs(t, FromPG(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, FromPG(&pgconn.PgError{Code: "23505"}), ErrConflict)
	assert.ErrorIs(t, FromPG(&pgconn.PgError{Code: "23503"}), ErrValidation)
	assert.ErrorIs(t, FromPG(&pgconn.PgError{Code: "22P02"}), ErrValidation)

	other := errors.New("network unreachable")
	assert.Equal(t, other, FromPG(other))
}

func TestIsOperational(t *testing.T) {
	assert.True(t, IsOperational(ErrConflict))
	assert.True(t, IsOperational(BadRequest("bad")))
	assert.False(t, IsOperational(errors.New("disk full")))
}
