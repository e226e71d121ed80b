package metrics

import "codeberg.org/mutker/procmon/internal/errors"

const (
	defaultPath      = "/metrics"
	defaultNamespace = "procmon"
)

type Config struct {
	Enabled   bool
	Path      string
	Namespace string
}

func DefaultConfig() Config {
	return Config{
		Path:      defaultPath,
		Namespace: defaultNamespace,
		Enabled:   false, // Disabled by default
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Only validate the path if metrics is enabled
	if c.Enabled && (c.Path == "" || c.Path[0] != '/') {
		return errFactory.WithData(ErrInvalidPath, c.Path)
	}
	return nil
}
