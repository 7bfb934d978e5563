package validation

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type pageQuery struct {
	Page  int `form:"page" validate:"gte=1"`
	Limit int `json:"limit" validate:"gte=1,lte=100"`
}

func TestToDetailsValidationErrors(t *testing.T) {
	v := validator.New()
	err := v.Struct(pageQuery{Page: 0, Limit: 500})

	assert.Equal(t, []string{
		"Page must be greater than or equal to 1",
		"Limit must be less than or equal to 100",
	}, ToDetails(err))
}

func TestToDetailsDecodeErrors(t *testing.T) {
	var dst map[string]any
	err := json.Unmarshal([]byte(`{"title":`), &dst)
	assert.Equal(t, []string{"payload: invalid json"}, ToDetails(err))

	_, err = strconv.Atoi("abc")
	assert.Equal(t, []string{"must be a whole number"}, ToDetails(err))

	assert.Equal(t, []string{"payload: invalid payload"}, ToDetails(errors.New("EOF")))
	assert.Nil(t, ToDetails(nil))
}
