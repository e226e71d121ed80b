package server

import (
	"net/http"

	"codeberg.org/mutker/procmon/internal/errors"
)

const (
	ErrInvalidArgument  = errors.ErrInvalidArgument
	ErrInternal         = errors.ErrInternal
	ErrShutdownFailed   = errors.ErrShutdownFailed
	ErrListenFailed     = errors.ErrListenFailed
	ErrNotFound         = errors.ErrNotFound
	ErrMethodNotAllowed = errors.ErrMethodNotAllowed
)

var statusByCode = map[errors.ErrorCode]int{
	errors.ErrInvalidWindow:    http.StatusBadRequest,
	errors.ErrDomain:           http.StatusBadRequest,
	errors.ErrInvalidArgument:  http.StatusBadRequest,
	errors.ErrUnknownParameter: http.StatusNotFound,
	ErrNotFound:                http.StatusNotFound,
	ErrMethodNotAllowed:        http.StatusMethodNotAllowed,
}

// StatusFor maps an error code onto an HTTP status.
func StatusFor(code errors.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
