// file: internals/helpers/json_response_test.go
package helper

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestValidationFields_MapsTagPerField(t *testing.T) {
	type payload struct {
		Score *float64 `validate:"omitempty,gte=0,lte=20"`
		Title string   `validate:"required"`
	}
	score := 25.0
	err := validator.New().Struct(&payload{Score: &score})
	require.Error(t, err)

	fields := ValidationFields(err)
	require.Equal(t, []string{"lte"}, fields["score"])
	require.Equal(t, []string{"required"}, fields["title"])
}

func TestValidationFields_NonValidatorErrorFallsBack(t *testing.T) {
	fields := ValidationFields(errors.New("payload rusak"))
	require.Equal(t, []string{"payload rusak"}, fields["_"])
}
