package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/bind"
)

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSONValidationErrors(t *testing.T) {
	var in struct {
		Phone string `json:"phone" validate:"required"`
	}
	errs, err := bind.JSON(post(`{"name":"x"}`), &in)
	require.NoError(t, err)
	assert.Equal(t, "phone is required", errs["phone"])
}

func TestJSONMalformed(t *testing.T) {
	var in struct{}
	_, err := bind.JSON(post(`{"phone":`), &in)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestObject(t *testing.T) {
	obj, err := bind.Object(post(`{"title":"Sweet Corn","price":12.5,"tags":["a"]}`))
	require.NoError(t, err)
	assert.Equal(t, "Sweet Corn", obj["title"])
	assert.Equal(t, 12.5, obj["price"])
}

func TestObjectRejectsNonObjects(t *testing.T) {
	for _, body := range []string{`[1,2]`, `"x"`, `null`, `{}`, ``} {
		_, err := bind.Object(post(body))
		assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err), body)
	}
}

func TestBodyTooLarge(t *testing.T) {
	prev := bind.MaxBodyBytes
	bind.MaxBodyBytes = 16
	t.Cleanup(func() { bind.MaxBodyBytes = prev })

	_, err := bind.Object(post(`{"title":"` + strings.Repeat("a", 64) + `"}`))
	require.Error(t, err)
	assert.Contains(t, apperr.As(err).Message(), "too large")
}
