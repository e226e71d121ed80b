package sampling

import "codeberg.org/mutker/procmon/internal/errors"

const (
	ErrInvalidWindow = errors.ErrInvalidWindow
)
