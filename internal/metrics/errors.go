package metrics

import "codeberg.org/mutker/procmon/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidPath   = errors.ErrorCode("metrics_invalid_path")

	// Registration Errors
	ErrRegisterFailed = errors.ErrInitMetrics
)
