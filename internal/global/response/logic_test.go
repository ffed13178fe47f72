package response

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithTipsKeepsCode(t *testing.T) {
	err := ErrNotFound.WithTips("Event not found")
	require.Equal(t, "Event not found", err.Message)
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrForbidden)
	require.Equal(t, "not found", ErrNotFound.Message)
}

func TestWithOrigin(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrDatabase.WithOrigin(cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Origin, "connection refused")
	require.NotNil(t, err.StackTrace())
	require.Same(t, ErrDatabase, ErrDatabase.WithOrigin(nil))
}

func TestKind(t *testing.T) {
	require.Equal(t, "validation", ErrInvalidRequest.Kind())
	require.Equal(t, "authentication_required", ErrTokenInvalid.Kind())
	require.Equal(t, "duplicate", ErrAlreadyExists.Kind())
	require.Equal(t, "precondition", ErrNotAttended.Kind())
	require.Equal(t, "throttled", ErrTooManyRequests.Kind())
	require.Equal(t, "server", ErrDatabase.Kind())
}
