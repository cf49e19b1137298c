package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

type passwordForm struct {
	Email       string `json:"email" validate:"required,email" label:"Email"`
	OldPassword string `json:"oldPassword" validate:"required" label:"Current password"`
	NewPassword string `json:"newPassword" validate:"required,min=6" label:"New password"`
}

type quantityForm struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(&passwordForm{Email: "a@b.co", OldPassword: "x", NewPassword: "secret1"})
	assert.NoError(t, err)
}

func TestStruct_FieldMessages(t *testing.T) {
	err := Struct(&passwordForm{Email: "not-an-email", NewPassword: "123"})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	assert.Equal(t, map[string]string{
		"email":       "Invalid email address",
		"oldPassword": "Current password is required",
		"newPassword": "New password must be at least 6 characters",
	}, appErr.Fields)
}

func TestStruct_RequiredEmail(t *testing.T) {
	err := Struct(passwordForm{OldPassword: "x", NewPassword: "secret1"})
	assert.Equal(t, map[string]string{"email": "Email is required"}, apperrors.GetAppError(err).Fields)
}

func TestStruct_FallbackLabel(t *testing.T) {
	err := Struct(&quantityForm{Quantity: -1})
	assert.Equal(t, map[string]string{"quantity": "quantity must be greater than or equal to 0"}, apperrors.GetAppError(err).Fields)
}
