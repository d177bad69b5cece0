package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/holisticagro/agromart/pkg/apperr"
)

func TestStatusMapping(t *testing.T) {
	cases := map[apperr.Code]int{
		apperr.CodeUnauthenticated:    http.StatusUnauthorized,
		apperr.CodeInvalidToken:       http.StatusUnauthorized,
		apperr.CodeForbidden:          http.StatusForbidden,
		apperr.CodeNotFound:           http.StatusNotFound,
		apperr.CodeValidation:         http.StatusBadRequest,
		apperr.CodeRateLimited:        http.StatusTooManyRequests,
		apperr.CodeStoreFailure:       http.StatusInternalServerError,
		apperr.CodeOrderPersistFailed: http.StatusInternalServerError,
		apperr.CodeUploadFailed:       http.StatusInternalServerError,
		apperr.CodeBlobDeleteFailed:   http.StatusInternalServerError,
		apperr.Code("SOMETHING_ELSE"):  http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, code.Status(), code)
	}
}

func TestOnlyBlobDeleteIsPartial(t *testing.T) {
	assert.True(t, apperr.CodeBlobDeleteFailed.Partial())
	assert.False(t, apperr.CodeOrderPersistFailed.Partial())
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "No Token", apperr.Unauthenticated().Message())
	assert.Equal(t, "Invalid Token", apperr.InvalidToken(nil).Message())
	assert.Equal(t, "custom", apperr.NotFound("custom").Message())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("insert order: %w", apperr.Wrap(apperr.CodeOrderPersistFailed, cause, ""))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperr.New(apperr.CodeOrderPersistFailed, ""))
	assert.Equal(t, apperr.CodeOrderPersistFailed, apperr.CodeOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCodeOfUntypedAndNil(t *testing.T) {
	assert.Equal(t, apperr.CodeStoreFailure, apperr.CodeOf(errors.New("boom")))
	assert.Equal(t, apperr.Code(""), apperr.CodeOf(nil))
	assert.Nil(t, apperr.As(errors.New("boom")))
}

func TestWithDetailsCopies(t *testing.T) {
	base := apperr.New(apperr.CodeUploadFailed, "")
	withDetails := base.WithDetails(map[string]string{"orphanedBlob": "1700000000000a.pdf"})

	assert.Nil(t, base.Details())
	assert.Equal(t, map[string]string{"orphanedBlob": "1700000000000a.pdf"}, withDetails.Details())
}
