package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the shared JSON logger. Development gets debug output,
// everything else info and up.
func New(env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
