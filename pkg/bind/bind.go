// Package bind decodes and validates an HTTP request body.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/validate"
)

// MaxBodyBytes caps JSON request bodies. The kernel sets it from
// MAX_BODY_BYTES at startup.
var MaxBodyBytes int64 = 4 << 20

// JSON decodes r.Body into dest and runs validation.
// Returns (errs, nil) when there are validation failures and (nil, err)
// when the body is malformed or too large; err is a VALIDATION_ERROR.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	if err = decode(r, dest); err != nil {
		return nil, err
	}
	if errs = validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// Object decodes a body that must be a single JSON object with at least
// one field. The keys and values are returned as decoded.
func Object(r *http.Request) (map[string]any, error) {
	var obj map[string]any
	if err := decode(r, &obj); err != nil {
		return nil, err
	}
	if len(obj) == 0 {
		return nil, apperr.Validation("request body must be a non-empty JSON object")
	}
	return obj, nil
}

func decode(r *http.Request, dest interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return apperr.Validation("request body is required")
	}
	r.Body = http.MaxBytesReader(nil, r.Body, MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.Wrap(apperr.CodeValidation, err, fmt.Sprintf("request body too large (max %d bytes)", maxErr.Limit))
		}
		return apperr.Wrap(apperr.CodeValidation, err, "invalid JSON body")
	}
	return nil
}
