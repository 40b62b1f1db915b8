package currency

import (
	"errors"
)

type Code string

const (
	CodeBadRequest Code = "400"
	CodeNotFound   Code = "404"
	CodeInternal   Code = "500"
)

type Error struct {
	Code        Code
	Description string
}

func (e *Error) Error() string {
	return e.Description
}

func newError(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

var (
	ErrCurrencyEmpty             = newError(CodeBadRequest, "Currency code cannot be empty.")
	ErrCurrencyInvalidLength     = newError(CodeBadRequest, "Currency code must be exactly 3 characters long.")
	ErrCurrencyInvalidCharacters = newError(CodeBadRequest, "Currency code can only contain letters.")

	ErrMoneyEmpty             = newError(CodeBadRequest, "Money amount cannot be empty.")
	ErrMoneyInvalidCharacters = newError(CodeBadRequest, "Money amount can only contain numbers and/or a dot.")
	ErrMoneyMalformed         = newError(CodeBadRequest, "Money amount could not be parsed.")
	ErrMoneyOverflow          = newError(CodeBadRequest, "Money amount could not be parsed. Overflow occurred.")
	ErrMoneyNotPositive       = newError(CodeBadRequest, "Money amount cannot be negative.")

	ErrInvalidTimestamp = newError(CodeBadRequest, "DateTime is not in a valid ISO 8601 format.")
	ErrInvalidCurrency  = newError(CodeBadRequest, "Currency is not valid.")

	ErrRateNotFound   = newError(CodeNotFound, "Rate not found.")
	ErrAgencyNotFound = newError(CodeNotFound, "Agency not found.")

	ErrUnreachable = newError(CodeInternal, "Unreachable state, invariant violated.")
)

// StatusCode returns the machine readable code of the first *Error in the
// chain of err. Errors outside of the taxonomy are reported as internal.
func StatusCode(err error) Code {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return CodeInternal
}
