package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewValidationError("x").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, NewDateFormatError("x").HTTPStatus())
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("x").HTTPStatus())
	assert.Equal(t, http.StatusConflict, NewConflictError("x").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, NewInternalError("x", nil).HTTPStatus())
}

func TestDateFormatErrorKeepsCode(t *testing.T) {
	err := NewDateFormatError("bad date")
	assert.Equal(t, "invalid_date", err.Code)
	assert.True(t, IsKind(err, KindValidation))
}

func TestAsAppErrorUnwrapsThroughWrapping(t *testing.T) {
	inner := NewNotFoundError("Order not found")
	wrapped := fmt.Errorf("intake: %w", inner)

	appErr := AsAppError(wrapped)
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, "Order not found", appErr.Message)
}

func TestAsAppErrorWrapsUnknownAsInternal(t *testing.T) {
	appErr := AsAppError(errors.New("driver exploded"))
	assert.Equal(t, KindInternal, appErr.Kind)
	assert.ErrorContains(t, appErr, "driver exploded")
}
