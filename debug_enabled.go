//go:build async_debug

package async

import (
	"fmt"
	"log/slog"
)

// debugf routes package-internal diagnostics (currently just the Join
// one-year-timeout warning) through the standard structured logger. It's
// only compiled in under the async_debug build tag, so it costs nothing -
// not even a branch - in ordinary builds.
func debugf(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...))
}
