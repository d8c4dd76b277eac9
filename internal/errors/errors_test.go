package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XuaTheGrate/adventure-api/internal/errors"
)

func TestNew(t *testing.T) {
	err := errors.NotFound("no such map")
	assert.Equal(t, errors.CodeNotFound, err.Code)
	assert.Equal(t, "NOT_FOUND: no such map", err.Error())
	assert.True(t, errors.IsNotFound(err))
}

func TestWrapPreservesCode(t *testing.T) {
	inner := errors.Unavailable("redis down")
	wrapped := errors.Wrap(inner, "failed to read travel timer")

	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(wrapped))
	assert.True(t, errors.IsUnavailable(wrapped))
	assert.Contains(t, wrapped.Error(), "failed to read travel timer")
	assert.True(t, stderrors.Is(wrapped, inner))
}

func TestWrapDefaultsToInternal(t *testing.T) {
	wrapped := errors.Wrap(stderrors.New("boom"), "something failed")
	assert.Equal(t, errors.CodeInternal, errors.GetCode(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "ignored"))
	assert.Nil(t, errors.WrapWithCode(nil, errors.CodeUnavailable, "ignored"))
}

func TestWrapWithCode(t *testing.T) {
	wrapped := errors.WrapWithCode(stderrors.New("dial tcp: refused"), errors.CodeUnavailable, "store unreachable")
	assert.True(t, errors.IsUnavailable(wrapped))
	assert.Equal(t, "store unreachable", errors.GetMessage(wrapped))
}

func TestWithMeta(t *testing.T) {
	err := errors.FailedPrecondition("busy").
		WithMeta("owner_id", "owner_1").
		WithMeta("remaining", "30s")

	meta := errors.GetMeta(err)
	require.NotNil(t, meta)
	assert.Equal(t, "owner_1", meta["owner_id"])
	assert.Equal(t, "30s", meta["remaining"])
}

func TestGetCodeOnForeignError(t *testing.T) {
	assert.Equal(t, errors.CodeInternal, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
}

func TestValidationBuilder(t *testing.T) {
	err := errors.NewValidationBuilder().
		RequiredField("Graph").
		InvalidField("PollInterval", "cannot be negative").
		Build()

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Graph")
	assert.Contains(t, err.Error(), "PollInterval")

	assert.NoError(t, errors.NewValidationBuilder().Build())
}
