package route

import (
	"fmt"

	"github.com/xy-planning-network/switchback"
)

// A ConfigError is route configuration that cannot be resolved.
// A ConfigError is always fatal to setup.
type ConfigError struct {
	msg string
}

func configErr(format string, args ...any) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string { return e.msg }

func (*ConfigError) Unwrap() error { return switchback.ErrBadConfig }
