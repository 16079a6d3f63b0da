package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// InfoLogger carries request and lifecycle logs on stdout; ErrorLogger carries
// failures on stderr.
var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

func InitLogger() {
	InitLoggerWithLevel("info")
}

// InitLoggerWithLevel configures both loggers. Unknown levels fall back to info.
// The error logger never goes below error level.
func InitLoggerWithLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	InfoLogger = newLogger(os.Stdout, lvl)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
}

// UseJSONFormat switches both loggers to JSON lines for log shippers.
func UseJSONFormat() {
	for _, l := range []*logrus.Logger{InfoLogger, ErrorLogger} {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
}

func newLogger(out io.Writer, lvl logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(lvl)
	return l
}
