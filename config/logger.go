package config

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger: JSON in production, colored text
// elsewhere. An unknown level name falls back to info.
func NewLogger(appEnv, level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if appEnv == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("invalid LOG_LEVEL %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// Component returns an entry tagging every line with the component name.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}
