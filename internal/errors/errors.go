package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Basic error check functions from standard library
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// appError is the only Error implementation. Values are never mutated
// after construction; WithMessage and WithData return copies.
type appError struct {
	code    ErrorCode
	message string
	err     error
	data    any
}

// Error renders "message[: data][: cause]". An empty message falls back to
// the registered text for the code.
func (e *appError) Error() string {
	var b strings.Builder

	if e.message != "" {
		b.WriteString(e.message)
	} else {
		b.WriteString(GetErrorMessage(e.code))
	}
	if e.data != nil {
		fmt.Fprintf(&b, ": %v", e.data)
	}
	if e.err != nil {
		fmt.Fprintf(&b, ": %v", e.err)
	}

	return b.String()
}

func (e *appError) Code() ErrorCode { return e.code }
func (e *appError) GetData() any    { return e.data }
func (e *appError) Unwrap() error   { return e.err }

// Is matches any coded error with the same code, so a sentinel built with
// New().New(code) can be used with errors.Is.
func (e *appError) Is(target error) bool {
	coded, ok := target.(Coder)
	return ok && coded.Code() == e.code
}

func (e *appError) WithMessage(msg string) Error {
	c := *e
	c.message = msg
	return &c
}

func (e *appError) WithData(data any) Error {
	c := *e
	c.data = data
	return &c
}

type factory struct{}

func (factory) New(code ErrorCode) Error {
	return &appError{code: code}
}

func (factory) Wrap(code ErrorCode, err error) Error {
	return &appError{code: code, err: err}
}

func (factory) WithMessage(code ErrorCode, msg string) Error {
	return &appError{code: code, message: msg}
}

func (factory) WithData(code ErrorCode, data any) Error {
	return &appError{code: code, data: data}
}

// New returns the Factory used to build coded errors
func New() Factory {
	return factory{}
}

// CodeOf returns the code of the outermost coded error in the chain,
// or an empty code when there is none.
func CodeOf(err error) ErrorCode {
	var coded Coder
	if errors.As(err, &coded) {
		return coded.Code()
	}

	return ""
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		if coded, ok := err.(Coder); ok && coded.Code() == code {
			return true
		}
		err = errors.Unwrap(err)
	}

	return false
}
