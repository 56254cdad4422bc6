package utils

// AppError is an operational error: something expected that should be
// reported to the client with a proper status code (validation failures,
// not-found, auth failures). Anything that is not an AppError is treated
// as a programming or infrastructure fault and rendered as a 500 with the
// message hidden in production.
type AppError struct {
	Code    int
	Message string
}

func NewAppError(message string, code int) *AppError {
	return &AppError{Code: code, Message: message}
}

func (e *AppError) Error() string {
	return e.Message
}

// Status returns the envelope status field: "fail" for client errors,
// "error" for server errors.
func (e *AppError) Status() string {
	if e.Code >= 500 {
		return "error"
	}
	return "fail"
}
