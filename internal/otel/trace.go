package otel

import (
	"os"
	"sync/atomic"
)

var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv("MOVIEHUB_TRACE") != "")
}

// TraceEnabled reports whether MOVIEHUB_TRACE was set at startup (or
// EnableTrace was called since).
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// EnableTrace turns message tracing on or off, e.g. from config.
func EnableTrace(v bool) {
	traceEnabled.Store(v)
}
