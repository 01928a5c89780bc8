package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

// Get 返回全局 logger
func Get() *logrus.Logger {
	return logg
}

// WithModule 带模块名的日志入口，各包统一用这个
func WithModule(module string) *logrus.Entry {
	return logg.WithField("module", module)
}
