// SPDX-License-Identifier: MPL-2.0

package theme

import "sync/atomic"

var current atomic.Pointer[Config]

// Default returns the process-wide configuration: the last value passed to
// SetDefault, or the library defaults.
func Default() Config {
	if c := current.Load(); c != nil {
		return *c
	}
	return Defaults()
}

// SetDefault replaces the process-wide configuration.
func SetDefault(c Config) {
	current.Store(&c)
}

// ResetDefault restores the library defaults as the process-wide configuration.
func ResetDefault() {
	current.Store(nil)
}
