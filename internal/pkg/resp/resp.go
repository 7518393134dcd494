/*
Package resp writes the JSON envelope shared by every HTTP endpoint:
{"code": 0, "message": "success", "data": ...} on success, the errs code and
message on failure.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"chatroom/internal/pkg/errs"
	"chatroom/internal/pkg/logx"
)

// JSONResponse is the envelope returned to HTTP clients.
type JSONResponse struct {
	// Code is 0 on success, an errs code otherwise.
	Code int `json:"code"`

	// Message is a client-friendly status description.
	Message string `json:"message"`

	// Data is the optional payload.
	Data any `json:"data,omitempty"`
}

// RespondJSON marshals payload and writes it with the given status.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "Error encoding JSON response", "http_status", httpStatus, "request_uri", r.RequestURI)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	if _, err := w.Write(response); err != nil {
		logx.Warn("Failed to write JSON response", "error", err.Error())
	}
}

// RespondSuccess sends data with HTTP 200.
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, r, http.StatusOK, JSONResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// RespondError sends customErr with its own HTTP status. A nil error is reported as ErrUnknown.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, r, customErr.Status, JSONResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
	})
}
