// Package httperror defines the structured errors returned by the API.
// Every error carries an HTTP status and a short machine-readable code;
// the optional detail is human-readable context.
package httperror

import "fmt"

type Error struct {
	Status int    `json:"-"`
	Code   string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func New(status int, code, detail string) *Error {
	return &Error{
		Status: status,
		Code:   code,
		Detail: detail,
	}
}

func BadRequest(code, detail string) *Error {
	return New(400, code, detail)
}

func Forbidden() *Error {
	return New(403, "forbidden", "")
}

func NotFound() *Error {
	return New(404, "not_found", "")
}

func TooManyRequests(detail string) *Error {
	return New(429, "rate_limit_exceeded", detail)
}

func InternalServerError(detail string) *Error {
	return New(500, "internal_error", detail)
}
