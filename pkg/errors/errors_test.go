package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrorTypeInvalidInput, "server cannot be empty")

	assert.Equal(t, ErrorTypeInvalidInput, err.Type)
	assert.Equal(t, "invalid_input: server cannot be empty", err.Error())
	assert.NotEmpty(t, err.Stack, "stack captured at creation")
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Wrap(cause, ErrorTypeHostUnreachable, "could not reach the cluster")

	assert.Equal(t, ErrorTypeHostUnreachable, err.Type)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")

	assert.Nil(t, Wrap(nil, ErrorTypeInternal, "ignored"))
}

func TestWrapPreservesStack(t *testing.T) {
	inner := New(ErrorTypeConnection, "open failed")
	outer := Wrap(inner, ErrorTypeHostUnreachable, "classified")

	assert.Equal(t, inner.Stack, outer.Stack)
	assert.ErrorIs(t, outer, inner)
}

func TestWithDetail(t *testing.T) {
	err := New(ErrorTypeInvalidInput, "cannot parse server").
		WithDetail("field", "server").
		WithDetail("value", "  ")

	assert.Equal(t, "server", err.Details["field"])
	assert.Equal(t, "  ", err.Details["value"])
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeDriverNotInstalled, "driver missing")

	assert.True(t, IsType(err, ErrorTypeDriverNotInstalled))
	assert.False(t, IsType(err, ErrorTypeHostUnreachable))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrorTypeDriverNotInstalled))
	assert.False(t, IsType(nil, ErrorTypeDriverNotInstalled))

	// Wrapped chains resolve to the outermost structured error.
	wrapped := fmt.Errorf("context: %w", err)
	assert.True(t, IsType(wrapped, ErrorTypeDriverNotInstalled))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(New(ErrorTypeHostUnreachable, "refused")))
	assert.True(t, IsRetryable(New(ErrorTypeTimeout, "slow")))
	assert.True(t, IsRetryable(New(ErrorTypeConnection, "dropped")))

	assert.False(t, IsRetryable(New(ErrorTypeDriverNotInstalled, "missing")))
	assert.False(t, IsRetryable(New(ErrorTypeInvalidInput, "bad server")))
	assert.False(t, IsRetryable(New(ErrorTypeCredential, "bad auth")))
	assert.False(t, IsRetryable(fmt.Errorf("plain")))
}

func TestUnwrapChain(t *testing.T) {
	root := fmt.Errorf("root cause")
	mid := Wrap(root, ErrorTypeConnection, "mid")
	top := Wrap(mid, ErrorTypeHostUnreachable, "top")

	require.True(t, errors.Is(top, root))

	var structured *Error
	require.True(t, errors.As(top, &structured))
	assert.Equal(t, ErrorTypeHostUnreachable, structured.Type)
}
