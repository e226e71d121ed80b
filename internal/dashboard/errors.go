package dashboard

import "codeberg.org/mutker/procmon/internal/errors"

const (
	ErrInvalidWindow    = errors.ErrInvalidWindow
	ErrInvalidArgument  = errors.ErrInvalidArgument
	ErrUnknownParameter = errors.ErrUnknownParameter
)
