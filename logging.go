package skinplay

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	// Named returns a logger for one component: the driver, the loader, an
	// importer. It shares output and the debug switch with its parent.
	Named(component string) Logger
}

// DefaultLogger writes "[prefix] LEVEL: message" lines, info and debug to one
// writer and warnings and errors to another.
type DefaultLogger struct {
	debug  *atomic.Bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewDefaultLoggerTo(os.Stdout, os.Stderr, prefix, debug)
}

func NewDefaultLoggerTo(out, errOut io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	l := &DefaultLogger{
		debug:  &atomic.Bool{},
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
	l.debug.Store(debug)
	return l
}

func (l *DefaultLogger) Named(component string) Logger {
	prefix := component
	if l.prefix != "" {
		prefix = l.prefix + "/" + component
	}
	return &DefaultLogger{debug: l.debug, prefix: prefix, out: l.out, err: l.err}
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.debug.Load()
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.debug.Store(enabled)
}

func (l *DefaultLogger) line(level string, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.line("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.line("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.line("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.line("ERROR", format, args...))
}

// LoggingModule installs the app logger: Logger when given, otherwise a
// DefaultLogger built from Prefix and Debug.
type LoggingModule struct {
	Prefix string
	Debug  bool
	Logger *DefaultLogger
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	logger := m.Logger
	if logger == nil {
		logger = NewDefaultLogger(m.Prefix, m.Debug)
	}
	app.addResources(logger)
}

type nopLogger struct{}

func NewNopLogger() Logger                          { return nopLogger{} }
func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) SetDebug(enabled bool)             {}
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}
func (n nopLogger) Named(component string) Logger   { return n }

// Logger returns the installed logger, or a no-op logger when there is none.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	if l, ok := GetResource[DefaultLogger](app); ok {
		return l
	}
	return NewNopLogger()
}

// componentLogger names l for a component, falling back to a no-op logger.
func componentLogger(l Logger, component string) Logger {
	if l == nil {
		return NewNopLogger()
	}
	return l.Named(component)
}
