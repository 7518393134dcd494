/*
Package errs provides the application error type and its code table.

Codes are grouped by range: 1xxx request handling, 2xxx chat input,
3xxx session, 5xxx internal.
*/
package errs

// 1xxx: request handling
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates a malformed JSON body.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing data after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the caller exceeded its request budget.
	ErrRateLimitExceeded = 1007
)

// 2xxx: chat input
const (
	// ErrRoomIDInvalid indicates a room id outside the accepted alphabet or length.
	ErrRoomIDInvalid = 2101

	// ErrNicknameEmpty indicates an empty (or whitespace only) nickname.
	ErrNicknameEmpty = 2201

	// ErrNicknameTooLong indicates a nickname above the character limit.
	ErrNicknameTooLong = 2202
)

// 3xxx: session
const (
	// ErrSessionMissing indicates that the request carried no valid session cookie.
	ErrSessionMissing = 3001
)

// 5xxx: internal
const (
	// ErrUnknown represents an unclassified server error.
	ErrUnknown = 5000
)
