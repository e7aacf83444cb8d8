package mylog

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level names accepted by Init.
const (
	PanicLevel = "panic"
	FatalLevel = "fatal"
	ErrorLevel = "error"
	WarnLevel  = "warn"
	InfoLevel  = "info"
	DebugLevel = "debug"
)

type emptyWriter struct{}

func (ew emptyWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

// convertLevel maps a config level name to logrus, anything else is info.
func convertLevel(level string) logrus.Level {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case PanicLevel, FatalLevel, ErrorLevel, WarnLevel, InfoLevel, DebugLevel:
		parsed, _ := logrus.ParseLevel(l)
		return parsed
	}
	return logrus.InfoLevel
}

// Init builds the SDK logger. Entries go to stdout, and also to rotating files
// under dir when dir is set. age is how many days of files to keep.
func Init(dir string, level string, age uint32) *logrus.Logger {
	clog := logrus.New()
	clog.Out = os.Stdout
	clog.Level = convertLevel(level)
	clog.Formatter = &logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}
	LoadFunctionHooker(clog)
	if dir != "" {
		clog.Hooks.Add(NewFileRotateHooker(dir, age))
	}
	return clog
}

// Discard returns a logger that drops everything, for tests and embedders
// that do not want SDK output.
func Discard() *logrus.Logger {
	clog := logrus.New()
	clog.Out = emptyWriter{}
	clog.Level = logrus.PanicLevel
	return clog
}
