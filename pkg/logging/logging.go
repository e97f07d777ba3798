// Package logging provides the leveled, timestamped logger used by sockstat.
//
// Lines are written as "<timestamp> - <LEVEL> - <message>". Filtering is done
// on the rank of the level name, see Rank.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Canonical level names, lowest rank first.
const (
	Debug   = "DEBUG"
	Info    = "INFO"
	Warning = "WARNING"
	Error   = "ERROR"
)

// DefaultLevel is the minimum level used when none is configured.
const DefaultLevel = Info

// TimeLayout is the timestamp format of every log line.
const TimeLayout = "2006-01-02 15:04:05"

var levels = []string{Debug, Info, Warning, Error}

var logrusLevels = map[string]logrus.Level{
	Debug:   logrus.DebugLevel,
	Info:    logrus.InfoLevel,
	Warning: logrus.WarnLevel,
	Error:   logrus.ErrorLevel,
}

const levelNameKey = "level_name"

// Rank returns the position of name in DEBUG < INFO < WARNING < ERROR.
// Names outside that set rank as DEBUG (0), so callers should stick to the
// canonical constants.
func Rank(name string) int {
	for i, l := range levels {
		if l == name {
			return i
		}
	}
	return 0
}

// Valid reports whether name is one of the canonical level names.
func Valid(name string) bool {
	_, ok := logrusLevels[name]
	return ok
}

// Levels returns the canonical level names in rank order.
func Levels() []string {
	return append([]string(nil), levels...)
}

type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	name, _ := e.Data[levelNameKey].(string)
	return []byte(fmt.Sprintf("%s - %s - %s\n", e.Time.Format(TimeLayout), name, e.Message)), nil
}

// Logger filters messages against a minimum level fixed at construction.
type Logger struct {
	min    string
	out    io.Writer
	base   *logrus.Logger
	rotate *lumberjack.Logger
}

// New returns a Logger writing to out that emits messages ranked at or above
// minLevel.
func New(minLevel string, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	base := logrus.New()
	base.SetFormatter(lineFormatter{})
	// Filtering happens in Enabled, where unknown names rank as DEBUG.
	base.SetLevel(logrus.TraceLevel)
	base.SetOutput(out)
	return &Logger{min: minLevel, out: out, base: base}
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level string) bool {
	return Rank(level) >= Rank(l.min)
}

// Log writes message at level if the level passes the filter.
func (l *Logger) Log(level, message string) {
	if !l.Enabled(level) {
		return
	}
	lvl, ok := logrusLevels[level]
	if !ok {
		lvl = logrus.DebugLevel
	}
	l.base.WithField(levelNameKey, level).Log(lvl, message)
}

// Debugf logs a debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Log(Debug, fmt.Sprintf(format, args...))
}

// Infof logs an info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Log(Info, fmt.Sprintf(format, args...))
}

// Warnf logs a warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Log(Warning, fmt.Sprintf(format, args...))
}

// Errorf logs an error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Log(Error, fmt.Sprintf(format, args...))
}

// EnableFileLogging tees every line into path, rotated by size.
func (l *Logger) EnableFileLogging(path string, maxSize, maxBackups, maxAge int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	l.rotate = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}
	l.base.SetOutput(io.MultiWriter(l.out, l.rotate))
	return nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.rotate == nil {
		return nil
	}
	l.base.SetOutput(l.out)
	err := l.rotate.Close()
	l.rotate = nil
	return err
}
