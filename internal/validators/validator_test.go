package validators

import (
	"testing"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsJSONFieldName(t *testing.T) {
	v := NewValidator()

	err := v.Validate(models.PostRequest{Title: "t", Image: "i", Description: "d", Content: "c", StatusID: 1})
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Equal(t, "category_id", appErr.Field)
	assert.Equal(t, "category_id is required", appErr.Message)
}

func TestValidateOneOf(t *testing.T) {
	err := NewValidator().Validate(models.PostRequest{Title: "t", Image: "i", CategoryID: 1, Description: "d", Content: "c", StatusID: 3})

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "status_id", appErr.Field)
	assert.Equal(t, "status_id must be one of [1 2]", appErr.Message)
}

func TestValidatePasses(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(models.CategoryRequest{Name: "Travel"}))
	assert.NoError(t, NewValidator().Validate(models.UpdateProfileRequest{}))
}

func TestValidateMin(t *testing.T) {
	err := NewValidator().Validate(models.RegisterUserRequest{Username: "ab", Name: "A"})

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "username", appErr.Field)
	assert.Contains(t, appErr.Message, "at least 3")
}
