package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/lesezeit/lesezeit-server/internal/errors"
	"github.com/lesezeit/lesezeit-server/internal/validation"
)

type TestRequest struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Title  string `json:"title" validate:"required"`
	Rating int    `json:"rating" validate:"gte=0,lte=5"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := TestRequest{
		Email:  "anna@example.ch",
		Title:  "Buch A",
		Rating: 4,
	}

	err := v.Validate(req)
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       TestRequest
		wantField string
	}{
		{
			name:      "missing required field",
			req:       TestRequest{Email: "anna@example.ch", Rating: 3},
			wantField: "title",
		},
		{
			name:      "invalid email",
			req:       TestRequest{Email: "not-an-email", Title: "Buch A"},
			wantField: "email",
		},
		{
			name:      "rating out of range",
			req:       TestRequest{Title: "Buch A", Rating: 9},
			wantField: "rating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidation))

			var domainErr *domainerrors.Error
			if assert.True(t, errors.As(err, &domainErr)) {
				assert.Contains(t, domainErr.Details, tt.wantField)
			}
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	req := TestRequest{Email: "not-an-email", Title: "Buch A"}

	err := v.Validate(req)
	assert.Error(t, err)

	var domainErr *domainerrors.Error
	if assert.True(t, errors.As(err, &domainErr)) {
		// JSON tag name "email", not struct field name "Email"
		assert.Contains(t, domainErr.Details, "email")
		assert.NotContains(t, domainErr.Details, "Email")
	}
}
