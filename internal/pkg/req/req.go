/*
Package req binds HTTP request bodies into handler input structs.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"chatroom/internal/pkg/errs"
)

// MaxJSONBodyBytes caps the size of JSON request bodies.
const MaxJSONBodyBytes int64 = 16 << 10

// BindJSON decodes the request body into dst.
// The body must be application/json, contain a single document, and use only known fields.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
