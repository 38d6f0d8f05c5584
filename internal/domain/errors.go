package domain

import (
	"errors"
	"fmt"
)

// ConfigError reports a configuration value that could not be applied.
// Setting names the offending configuration key.
type ConfigError struct {
	Setting string
	Err     error
}

// Error returns a message that names the offending setting.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %q setting: %v", e.Setting, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError wraps err as a ConfigError for setting.
func NewConfigError(setting string, err error) *ConfigError {
	return &ConfigError{Setting: setting, Err: err}
}

// AsConfigError reports whether err is a ConfigError and returns it.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ToNotice converts a ConfigError into an error-severity notice.
func (e *ConfigError) ToNotice(path string) Notice {
	return Notice{
		Severity: SeverityError,
		Message:  fmt.Sprintf("Something failed while applying the configuration. Check your %q setting: %v", e.Setting, e.Err),
		Setting:  e.Setting,
		Path:     path,
	}
}
