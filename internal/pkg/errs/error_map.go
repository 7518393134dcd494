package errs

import "net/http"

// errorMap holds the user-facing template for every code.
var errorMap = map[int]CustomError{
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	ErrRoomIDInvalid:   {Code: ErrRoomIDInvalid, Message: "Invalid room id."},
	ErrNicknameEmpty:   {Code: ErrNicknameEmpty, Message: "Nickname must not be empty."},
	ErrNicknameTooLong: {Code: ErrNicknameTooLong, Message: "Nickname is too long: %d characters limit."},

	ErrSessionMissing: {Code: ErrSessionMissing, Message: "No session. Reload the page to get one.", Status: http.StatusUnauthorized},

	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
