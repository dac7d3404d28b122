package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fadedpez/bankroll/internal/types"
	"github.com/sirupsen/logrus"
)

// Level represents a logging level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var logrusLevels = map[Level]logrus.Level{
	DEBUG: logrus.DebugLevel,
	INFO:  logrus.InfoLevel,
	WARN:  logrus.WarnLevel,
	ERROR: logrus.ErrorLevel,
}

// Fields is a set of structured key/value pairs attached to a log entry
type Fields = logrus.Fields

// Logger wraps a logrus logger with the bot's leveled printf API
type Logger struct {
	entry *logrus.Entry
	level Level
}

// NewLogger creates a new logger instance writing text lines to stdout
func NewLogger(level Level) *Logger {
	return NewLoggerWithOutput(level, os.Stdout)
}

// NewLoggerWithOutput creates a logger writing to w
func NewLoggerWithOutput(level Level, w io.Writer) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(logrusLevels[level])
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return &Logger{
		entry: logrus.NewEntry(base),
		level: level,
	}
}

// ParseLevel converts a level name ("debug", "INFO", ...) to a Level.
// Unknown names map to INFO.
func ParseLevel(name string) Level {
	for level, levelName := range levelNames {
		if strings.EqualFold(name, levelName) {
			return level
		}
	}
	return INFO
}

// WithFields returns a child logger that attaches fields to every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	return &Logger{
		entry: l.entry.WithFields(fields),
		level: l.level,
	}
}

// SetLevel changes the minimum level that is written
func (l *Logger) SetLevel(level Level) {
	l.level = level
	l.entry.Logger.SetLevel(logrusLevels[level])
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// LogError logs a coded error with its context
func (l *Logger) LogError(err error) {
	var coded *types.Error
	if types.As(err, &coded) {
		fields := Fields{
			"code":    string(coded.Code),
			"message": coded.Message,
		}
		if coded.Err != nil {
			fields["cause"] = fmt.Sprintf("%v", coded.Err)
		}
		l.entry.WithFields(fields).Error("economy error occurred")
	} else {
		l.Error("Unexpected error: %v", err)
	}
}

// Default logger instance
var Default = NewLogger(INFO)
