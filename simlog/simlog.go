// Package simlog provides the plain narration log used alongside the
// structured slog output in telemetry. It exists for human-readable
// tick-by-tick commentary (scenario runs, CLI output) that doesn't
// belong in the structured diagnostics stream.
package simlog

import (
	"fmt"
	"io"
)

var logWriter io.Writer

// SetLogWriter sets the log output destination. A nil writer resets
// output to stdout.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}
