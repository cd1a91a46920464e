package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// errInvalidJSON is returned by DecodeJSON for a malformed body.
var errInvalidJSON = errors.New("invalid JSON")

// DecodeJSON decodes an optional JSON body into dst and validates it. An
// empty body leaves dst untouched. Field errors are returned as a
// field→tag map.
func DecodeJSON(r *http.Request, dst any) (map[string]string, error) {
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return nil, errInvalidJSON
		}
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return nil, err
		}
		fields := make(map[string]string, len(validationErrs))
		for _, validationErr := range validationErrs {
			fields[validationErr.Field()] = validationErr.Tag()
		}
		return fields, nil
	}
	return nil, nil
}
