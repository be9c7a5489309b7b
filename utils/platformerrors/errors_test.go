package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError_GeneratesUUIDAndRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	err := NewError(ctx, LayerRoute, ErrorTypeValidation, "query is required", nil, "")

	_, parseErr := uuid.Parse(err.GetUUID())
	require.NoError(t, parseErr)
	assert.Equal(t, "req-42", err.GetRequestID())
	assert.Equal(t, ErrorTypeValidation, err.GetErrorType())
	assert.Contains(t, err.Error(), "[route][VALIDATION]")
}

func TestNewError_CustomUUID(t *testing.T) {
	err := NewError(context.Background(), LayerRoute, ErrorTypeValidation, "invalid request body", nil, "fixed-id")
	assert.Equal(t, "fixed-id", err.GetUUID())
	assert.Empty(t, err.GetRequestID())
}

func TestAsError(t *testing.T) {
	assert.Nil(t, AsError(context.Background(), LayerRoute, nil, "ignored"))

	base := errors.New("boom")
	wrapped := AsError(context.Background(), LayerRoute, base, "upstream")
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.ErrorIs(t, wrapped, base)

	typed := NewError(context.Background(), LayerRoute, ErrorTypeValidation, "missing query", nil, "id-1")
	rewrapped := AsError(context.Background(), LayerRoute, typed, "search")
	assert.Equal(t, ErrorTypeValidation, rewrapped.Type)
	assert.Equal(t, "id-1", rewrapped.UUID)
	assert.Equal(t, "search: missing query", rewrapped.Message)
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorTypeToHTTPStatus(tt.errorType))
		})
	}
}
