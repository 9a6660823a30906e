package config

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggersMu    sync.Mutex
	loggers      = map[string]*logrus.Logger{}
	loggingLevel = logrus.InfoLevel
)

// NamedLogger creates named package logger.
// Loggers created with the same name are shared.
func NamedLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, ok := loggers[name]; ok {
		return logger
	}
	logger := &logrus.Logger{
		Out: os.Stderr,
		Formatter: &CustomTextFormatter{
			TextFormatter: logrus.TextFormatter{
				ForceColors: true,
			},
			name: name,
		},
		Hooks: make(logrus.LevelHooks),
		Level: loggingLevel,
	}
	loggers[name] = logger
	return logger
}

// SetLoggingLevel changes level of every named logger, including
// loggers created later.
func SetLoggingLevel(level logrus.Level) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	loggingLevel = level
	for _, logger := range loggers {
		logger.SetLevel(level)
	}
}

// CustomTextFormatter ...
type CustomTextFormatter struct {
	logrus.TextFormatter
	name string
}

// Format renders a single log entry
func (f *CustomTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	_, file, no, _ := runtime.Caller(7)
	entry.Message = fmt.Sprintf("[%s][%-15s:%03d] %s", f.name, path.Base(file), no, entry.Message)
	return f.TextFormatter.Format(entry)
}
