// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package textpost

import (
	"errors"
	"fmt"
	"net/http"
)

// messagePrefix opens every user-visible generation error message.
const messagePrefix = "Failed to generate image: "

// Code classifies a generation failure for API consumers.
type Code string

const (
	CodeUnauthenticated Code = "unauthenticated"
	CodeInvalidArgument Code = "invalid-argument"
	CodeNotFound        Code = "not-found"
	CodeInternal        Code = "internal"
)

// HTTPStatus maps a code to its HTTP response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified generation failure. The code survives wrapping so
// callers can map it; the message is safe to return to the client.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// failf builds a classified error with the standard message prefix.
func failf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: messagePrefix + fmt.Sprintf(format, args...),
	}
}

// classify preserves an existing classified error, otherwise coerces err
// into an internal error carrying the standard prefix.
func classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Code:    CodeInternal,
		Message: messagePrefix + err.Error(),
		cause:   err,
	}
}
