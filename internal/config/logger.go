package config

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger. Debug mode forces debug level and
// colored text output; otherwise the configured level and format apply.
func NewLogger(w io.Writer, cfg LogConfig, debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
		return logger
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	if err != nil {
		logger.WithField("level", cfg.Level).Warn("Unknown log level, using info")
	}

	return logger
}
