package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/holisticagro/agromart/pkg/validate"
)

type registerInput struct {
	Phone    string `json:"phone"    validate:"required,max=32"`
	Email    string `json:"email"    validate:"omitempty,email"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
	Status   string `json:"status"   validate:"omitempty,oneof=pending shipped delivered"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{Phone: "01712345678", Email: "a@b.co"})
	assert.False(t, validate.HasErrors(errs))
	assert.Nil(t, errs)
}

func TestFieldsAreKeyedByJSONName(t *testing.T) {
	errs := validate.Struct(registerInput{Email: "not-an-email", PhotoURL: "nope", Status: "lost"})

	assert.Equal(t, "phone is required", errs["phone"])
	assert.Equal(t, "email must be a valid email", errs["email"])
	assert.Equal(t, "photoURL must be a valid URL", errs["photoURL"])
	assert.Contains(t, errs["status"], "must be one of")
}

func TestMaxLength(t *testing.T) {
	errs := validate.Struct(registerInput{Phone: "0123456789012345678901234567890123"})
	assert.Equal(t, "phone must be at most 32", errs["phone"])
}
