package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Domain errors
	ErrInvalidWindow    ErrorCode = "invalid_window"
	ErrDomain           ErrorCode = "domain_error"
	ErrUnknownParameter ErrorCode = "unknown_parameter"

	// Application errors
	ErrInitApp        ErrorCode = "init_app_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"
	ErrAlreadyRunning ErrorCode = "already_running"
	ErrPIDFile        ErrorCode = "pid_file_failed"
	ErrUnknownCommand ErrorCode = "unknown_command"
	ErrEncodeOutput   ErrorCode = "encode_output_failed"

	// Metrics errors
	ErrInitMetrics ErrorCode = "init_metrics_failed"

	// Server errors
	ErrListenFailed     ErrorCode = "listen_failed"
	ErrNotFound         ErrorCode = "not_found"
	ErrMethodNotAllowed ErrorCode = "method_not_allowed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:         "Internal error occurred",
	ErrInvalidArgument:  "Invalid argument provided",
	ErrInvalidConfig:    "Invalid configuration",
	ErrBindFlags:        "Failed to bind flags",
	ErrReadConfig:       "Failed to read configuration",
	ErrInvalidLogLevel:  "Invalid log level",
	ErrInvalidWindow:    "Observation window outside supported range",
	ErrDomain:           "Degenerate tolerance configuration",
	ErrUnknownParameter: "Unknown parameter",
	ErrShutdownFailed:   "Shutdown failed",
	ErrInitApp:          "Failed to initialize application",
	ErrAlreadyRunning:   "Another instance is already running",
	ErrPIDFile:          "Failed to manage PID file",
	ErrUnknownCommand:   "Unknown command",
	ErrEncodeOutput:     "Failed to encode output",
	ErrInitMetrics:      "Failed to initialize metrics",
	ErrListenFailed:     "Failed to serve HTTP",
	ErrNotFound:         "Not found",
	ErrMethodNotAllowed: "Method not allowed",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
