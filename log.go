package vtcore

import (
	"log"
	"os"
)

// logger is the engine's only logging surface. The corpus's own PTY/session
// code (not a third-party logging framework) logs through the standard
// library with bracketed level tags, so that is what vtcore does too -
// construction-time problems become errors, a failed response write gets
// a line here and the engine keeps running. Malformed input is dropped
// without logging.
type logger struct {
	*log.Logger
}

func newLogger() *logger {
	return &logger{log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *logger) errorf(format string, args ...any) {
	l.Printf("[ERROR] "+format, args...)
}

func (l *logger) warnf(format string, args ...any) {
	l.Printf("[WARN] "+format, args...)
}

func (l *logger) debugf(format string, args ...any) {
	l.Printf("[DEBUG] "+format, args...)
}
