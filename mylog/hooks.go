package mylog

import (
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

const (
	logFileName      = "sdk.log"
	defaultMaxAgeDay = 7
)

// NewFileRotateHooker writes every entry into path/sdk.log, rotated daily and
// kept for age days.
func NewFileRotateHooker(path string, age uint32) logrus.Hook {
	if age == 0 {
		age = defaultMaxAgeDay
	}
	if err := os.MkdirAll(path, 0700); err != nil {
		panic(err)
	}
	base := filepath.Join(path, logFileName)
	writer, err := rotatelogs.New(
		base+".%Y%m%d",
		rotatelogs.WithLinkName(base),
		rotatelogs.WithMaxAge(time.Duration(age)*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		panic(err)
	}
	return lfshook.NewHook(lfshook.WriterMap{
		logrus.DebugLevel: writer,
		logrus.InfoLevel:  writer,
		logrus.WarnLevel:  writer,
		logrus.ErrorLevel: writer,
		logrus.FatalLevel: writer,
		logrus.PanicLevel: writer,
	}, &logrus.TextFormatter{DisableColors: true, TimestampFormat: "2006-01-02 15:04:05.000"})
}

// LoadFunctionHooker makes every entry carry its calling function.
func LoadFunctionHooker(clog *logrus.Logger) {
	clog.SetReportCaller(true)
}
