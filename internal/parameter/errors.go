package parameter

import "codeberg.org/mutker/procmon/internal/errors"

const (
	ErrUnknownParameter = errors.ErrUnknownParameter
	ErrInvalidOverride  = errors.ErrInvalidConfig
)
