package customErrors

import (
	"errors"
	"fmt"
)

const (
	ErrNotFound         = "NOT FOUND"
	ErrInvalidKind      = "INVALID KIND"
	ErrInvalidAmount    = "INVALID AMOUNT"
	ErrPasswordMismatch = "PASSWORD MISMATCH"
	ErrDuplicateName    = "DUPLICATE NAME"
	ErrAuth             = "UNAUTHORIZED"
	ErrInternal         = "INTERNAL"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("code: %s, message: %s", e.Code, e.Message)
}

// HasCode reports whether err carries an ErrorResponse with the given code,
// unwrapping as needed.
func HasCode(err error, code string) bool {
	var appErr ErrorResponse
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
