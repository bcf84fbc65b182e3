// Package envconfig reads the IMAGE_EDIT_* environment variables.
package envconfig

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Var returns the value of an environment variable with surrounding
// whitespace and quotes removed.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Bool returns a getter for a boolean variable. An unset variable is false;
// a set but unparsable one is true.
func Bool(key string) func() bool {
	return func() bool {
		if s := Var(key); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return false
	}
}

// Debug enables per-stage logging.
// Configurable via IMAGE_EDIT_DEBUG.
var Debug = Bool("IMAGE_EDIT_DEBUG")

// DefaultTimeout bounds a single edit subprocess.
const DefaultTimeout = 90 * time.Second

// Timeout returns how long one edit may run before it is killed.
// Configurable via IMAGE_EDIT_TIMEOUT as a duration ("2m") or a number of
// seconds. Zero or negative values fall back to the default.
func Timeout() time.Duration {
	timeout := DefaultTimeout
	if s := Var("IMAGE_EDIT_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			timeout = d
		} else if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			timeout = time.Duration(n) * time.Second
		} else {
			log.Printf("invalid IMAGE_EDIT_TIMEOUT %q, using default %s", s, DefaultTimeout)
		}
	}

	if timeout <= 0 {
		return DefaultTimeout
	}
	return timeout
}

// Binary returns the program the server runs for each edit.
// Configurable via IMAGE_EDIT_BINARY; empty means the running executable.
func Binary() string {
	return Var("IMAGE_EDIT_BINARY")
}

// EnvVar describes one configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"IMAGE_EDIT_DEBUG":   {"IMAGE_EDIT_DEBUG", Debug(), "Log every pipeline stage with its duration"},
		"IMAGE_EDIT_TIMEOUT": {"IMAGE_EDIT_TIMEOUT", Timeout(), "How long a single edit may run (default \"90s\")"},
		"IMAGE_EDIT_BINARY":  {"IMAGE_EDIT_BINARY", Binary(), "Editor executable spawned by the server (default: this binary)"},
	}
}
