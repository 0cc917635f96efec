package profile

import "fmt"

// DbError is a failure reported by a profile store.
type DbError struct {
	Message string
	Code    int // 0 when the store gave no code
}

func (e *DbError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("db error %d: %s", e.Code, e.Message)
	}
	return "db error: " + e.Message
}

// NewDbError returns a DbError with an optional code.
func NewDbError(message string, code ...int) *DbError {
	return &DbError{Message: message, Code: firstOrZero(code)}
}

// EmailError is a failure reported by a notification sender.
type EmailError struct {
	Message string
	Code    int
}

func (e *EmailError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("email error %d: %s", e.Code, e.Message)
	}
	return "email error: " + e.Message
}

// NewEmailError returns an EmailError with an optional code.
func NewEmailError(message string, code ...int) *EmailError {
	return &EmailError{Message: message, Code: firstOrZero(code)}
}

func firstOrZero(codes []int) int {
	switch len(codes) {
	case 0:
		return 0
	case 1:
		return codes[0]
	default:
		panic("firstOrZero: only one or zero codes allowed")
	}
}
