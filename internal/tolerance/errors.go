package tolerance

import "codeberg.org/mutker/procmon/internal/errors"

const (
	ErrDomain = errors.ErrDomain
)
