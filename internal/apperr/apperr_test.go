package apperr

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCodeByKind(t *testing.T) {
	cases := []struct {
		err  *Error
		code int
	}{
		{Validation("text required"), http.StatusBadRequest},
		{Auth("unauthorized"), http.StatusUnauthorized},
		{NotFound("post not found"), http.StatusNotFound},
		{Conflict("already liked"), http.StatusConflict},
		{Persistence("failed to save", errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.HTTPCode(), string(tc.err.Kind()))
	}
}

func TestIsMatchesKindThroughWrapping(t *testing.T) {
	err := errors.Wrap(NotFound("post not found"), "load post")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, NotFound("post not found")))
	assert.False(t, errors.Is(err, NotFound("cv not found")))
}

func TestPersistenceKeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("connection reset")
	err := Persistence("failed to fetch posts", cause)

	assert.Equal(t, "failed to fetch posts", err.Message())
	assert.Contains(t, err.Error(), "connection reset")
	assert.True(t, errors.Is(err, cause))
}

func TestFrom(t *testing.T) {
	appErr, ok := From(errors.WithMessage(Auth("not your post"), "remove"))
	require.True(t, ok)
	assert.Equal(t, KindAuth, appErr.Kind())
	assert.Equal(t, "not your post", appErr.Message())

	_, ok = From(errors.New("plain"))
	assert.False(t, ok)
}
