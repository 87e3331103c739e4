package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"socialnetwork/internal/config"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})

	Init(config.Log{Level: "debug", Format: "text"})
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)

	Init(config.Log{Level: "nonsense", Format: "json"})
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)
}
