package arena

import (
	"fmt"
	"log/slog"
)

// assertf reports an internal invariant violation. Builds tagged
// arenadebug panic; release builds log and carry on.
func assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if debugAssertions {
		panic("arena: invariant violated: " + msg)
	}
	slog.Error("invariant violated", "detail", msg)
}
