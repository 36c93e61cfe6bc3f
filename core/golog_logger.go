package core

import "github.com/kataras/golog"

// GologLogger adapts github.com/kataras/golog to the Logger interface, for
// callers that want structured, leveled output instead of DefaultLogger's
// plain stdlib rendering.
type GologLogger struct {
	logger *golog.Logger
	level  LogLevel
}

var _ Logger = (*GologLogger)(nil)

// NewGologLogger wraps an existing golog.Logger.
func NewGologLogger(logger *golog.Logger) *GologLogger {
	return &GologLogger{logger: logger, level: LogLevelInfo}
}

func (l *GologLogger) Debug(format string, v ...any) {
	if l.level <= LogLevelDebug {
		l.logger.Debugf(format, v...)
	}
}

func (l *GologLogger) Info(format string, v ...any) {
	if l.level <= LogLevelInfo {
		l.logger.Infof(format, v...)
	}
}

func (l *GologLogger) Warn(format string, v ...any) {
	if l.level <= LogLevelWarn {
		l.logger.Warnf(format, v...)
	}
}

func (l *GologLogger) Error(format string, v ...any) {
	if l.level <= LogLevelError {
		l.logger.Errorf(format, v...)
	}
}

// SetLevel adjusts both the adapter's own gate and the underlying golog
// logger's level.
func (l *GologLogger) SetLevel(level LogLevel) {
	l.level = level
	switch level {
	case LogLevelDebug:
		l.logger.SetLevel("debug")
	case LogLevelInfo:
		l.logger.SetLevel("info")
	case LogLevelWarn:
		l.logger.SetLevel("warn")
	case LogLevelError:
		l.logger.SetLevel("error")
	case LogLevelNone:
		l.logger.SetLevel("disable")
	}
}
