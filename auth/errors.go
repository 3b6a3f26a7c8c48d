package auth

import "net/http"

// Error is a typed failure with a stable machine-readable code and the HTTP
// status the boundary maps it to. The wrapped cause is never serialized.
type Error struct {
	Code    string
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is makes errors.Is match on the code, so sentinel comparisons work even
// after an error has been wrapped with a cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrEmailTaken         = &Error{Code: "EmailTaken", Status: http.StatusConflict, Message: "Email already in use"}
	ErrInvalidCredentials = &Error{Code: "InvalidCredentials", Status: http.StatusBadRequest, Message: "Invalid email or password"}
	ErrUserNotFound       = &Error{Code: "UserNotFound", Status: http.StatusNotFound, Message: "User not found"}
	ErrOtpInvalid         = &Error{Code: "OtpInvalid", Status: http.StatusBadRequest, Message: "Invalid OTP"}
	ErrOtpExpired         = &Error{Code: "OtpExpired", Status: http.StatusBadRequest, Message: "OTP expired"}
	ErrOtpRequired        = &Error{Code: "OtpRequired", Status: http.StatusBadRequest, Message: "OTP verification required"}
	ErrInvalidToken       = &Error{Code: "InvalidToken", Status: http.StatusUnauthorized, Message: "Invalid or expired token"}
	ErrNotificationFailed = &Error{Code: "NotificationFailed", Status: http.StatusBadGateway, Message: "Failed to send OTP email"}
)

// Validation builds a 400 for missing or malformed input.
func Validation(message string) *Error {
	return &Error{Code: "Validation", Status: http.StatusBadRequest, Message: message}
}

// Dependency builds a 502 for a storage or collaborator failure. The cause is
// kept for logs but never reaches the client.
func Dependency(message string, cause error) *Error {
	return &Error{Code: "Dependency", Status: http.StatusBadGateway, Message: message, cause: cause}
}

// Internal builds a 500 for unexpected failures.
func Internal(cause error) *Error {
	return &Error{Code: "Internal", Status: http.StatusInternalServerError, Message: "Internal server error", cause: cause}
}
