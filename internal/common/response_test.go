package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrThreadNotFound, http.StatusNotFound},
		{ErrUserNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrInvalidToken, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrThreadLocked, http.StatusForbidden},
		{ErrReactionExists, http.StatusBadRequest},
		{ErrUserAlreadyExists, http.StatusBadRequest},
		{ErrCategoryNotEmpty, http.StatusBadRequest},
		{ErrThreadNotEmpty, http.StatusBadRequest},
		{ErrInvalidInput, http.StatusBadRequest},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestStatusForError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("adding reaction: %w", ErrReactionExists)
	assert.Equal(t, http.StatusBadRequest, StatusForError(wrapped))
}

// Conflicts share the 400 status with validation failures but must stay
// distinguishable through the error code.
func TestDomainErrorResponse_ConflictCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	DomainErrorResponse(c, ErrReactionExists)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error ErrorInfo `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "CONFLICT", body.Error.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)

	DomainErrorResponse(c, ErrInvalidInput)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
}
