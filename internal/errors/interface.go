package errors

// ErrorCode represents a unique identifier for each error type
type ErrorCode string

// Coder is satisfied by any error that exposes an ErrorCode. HasCode and
// CodeOf match on it, so callers outside this package can participate.
type Coder interface {
	error
	Code() ErrorCode
}

// Error represents a coded error with optional message, cause and payload
type Error interface {
	Coder
	WithMessage(msg string) Error
	WithData(data any) Error
	GetData() any
	Unwrap() error
}

// Factory defines methods for creating coded errors
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WithData(code ErrorCode, data any) Error
}
