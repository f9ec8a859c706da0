// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var loggerPtr atomic.Pointer[log.Logger]

func init() {
	loggerPtr.Store(log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "richhelp",
		Level:  log.WarnLevel,
	}))
}

// logger forwards to the current sink.
var logger = loggerProxy{}

type loggerProxy struct{}

func (loggerProxy) Warn(msg any, keyvals ...any)  { loggerPtr.Load().Warn(msg, keyvals...) }
func (loggerProxy) Debug(msg any, keyvals ...any) { loggerPtr.Load().Debug(msg, keyvals...) }

// Logger returns the logger receiving configuration warnings.
func Logger() *log.Logger { return loggerPtr.Load() }

// SetLogger replaces the warning sink. A nil logger restores the stderr default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(os.Stderr, log.Options{Prefix: "richhelp", Level: log.WarnLevel})
	}
	loggerPtr.Store(l)
}
