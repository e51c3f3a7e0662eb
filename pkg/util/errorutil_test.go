package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpstreamError_KeepsStatusAndBody(t *testing.T) {
	err := NewUpstreamError(http.StatusTooManyRequests, `{"message":"rate limited"}`)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusTooManyRequests, domainErr.HTTPStatus)
	assert.Equal(t, `{"message":"rate limited"}`, domainErr.Message)
	assert.Equal(t, http.StatusTooManyRequests, domainErr.Details["upstream_status"])
}

func TestToDomainError_WrapsUnknownErrors(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	domainErr := ToDomainError(cause)

	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.ErrorIs(t, domainErr, cause)
}

func TestToDomainError_PassesDomainErrorsThrough(t *testing.T) {
	original := NewValidationError("bad input", map[string]any{"field": "status"})
	domainErr := ToDomainError(original)

	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "status", domainErr.Details["field"])
}

func TestUpstreamFormatError(t *testing.T) {
	domainErr := ToDomainError(NewUpstreamFormatError())

	assert.Equal(t, "UPSTREAM_BAD_FORMAT", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, "Expected JSON but got HTML", domainErr.Message)
}
