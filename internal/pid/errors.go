package pid

import "codeberg.org/mutker/procmon/internal/errors"

const (
	ErrAlreadyRunning = errors.ErrAlreadyRunning
	ErrPIDFile        = errors.ErrPIDFile
)
