package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"socialnetwork/internal/config"
)

// Init configures the global logrus logger from cfg.
func Init(cfg config.Log) {
	logrus.SetOutput(os.Stdout)

	switch strings.ToLower(cfg.Format) {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("unknown log level %q, falling back to info", cfg.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logrus.WithField("level", level.String()).Debug("Logger initialized")
}
