// Package obs wires the ambient logging and metrics stack shared by the
// rule-engine packages. The hot-path search packages (art, numtrie,
// sortedarray, oriter) intentionally do not import this package.
package obs

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger overrides the package-wide logger. Embedding applications
// call this once at startup; the default is a no-op logger so the
// library stays silent unless asked to speak.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// L returns the current logger.
func L() *zap.Logger {
	return logger.Load()
}
