package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeValidation, http.StatusBadRequest},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), "code %s", tt.code)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := Conflictf("media %q is already borrowed", "med-1")

	assert.True(t, Is(err, ErrConflict))
	assert.False(t, Is(err, ErrNotFound))
}

func TestWithCauseUnwraps(t *testing.T) {
	cause := fmt.Errorf("UNIQUE constraint failed")
	err := ErrConflict.WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestWithDetailsKeepsCode(t *testing.T) {
	err := Validation("invalid body").WithDetails(map[string]string{"duedate": "required"})

	assert.Equal(t, CodeValidation, err.Code)
	assert.NotNil(t, err.Details)
	assert.True(t, Is(err, ErrValidation))
}
