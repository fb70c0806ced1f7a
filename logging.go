package verifactu

import "log"

// Logger is the minimal structured-logging seam the client writes
// correlation-ID request/response lines through. No example in this
// module's ancestry imports a structured logging library as an
// application dependency, so the default implementation wraps the
// standard library's log.Logger rather than reaching for one.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// nopLogger discards everything; it is the Client default when no
// Logger is supplied via WithLogger.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Errorf(string, ...any) {}

// StdLogger adapts a standard library *log.Logger to the Logger
// interface, prefixing error lines distinctly from debug lines.
type StdLogger struct {
	l *log.Logger
}

// NewStdLogger wraps l, or the default standard logger if l is nil.
func NewStdLogger(l *log.Logger) StdLogger {
	if l == nil {
		l = log.Default()
	}
	return StdLogger{l: l}
}

func (s StdLogger) Debugf(format string, args ...any) {
	s.l.Printf("DEBUG "+format, args...)
}

func (s StdLogger) Errorf(format string, args ...any) {
	s.l.Printf("ERROR "+format, args...)
}
