//go:build !async_debug

package async

// debugf is a no-op in default builds. Build with -tags async_debug to
// route these calls through log/slog instead; see debug_enabled.go.
func debugf(format string, args ...any) {}
