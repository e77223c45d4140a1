package logging

import (
	"path/filepath"
	"testing"

	"SamuraiArchive/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestNewLogger(t *testing.T) {
	l := NewLogger(config.LogConfig{Level: "debug", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = NewLogger(config.LogConfig{Level: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestNewLoggerWithFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "archive.log")
	l := NewLogger(config.LogConfig{Level: "info", File: file, MaxSizeMB: 1})
	l.Info("hello")
	assert.FileExists(t, file)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, GormLogLevel("silent"))
	assert.Equal(t, logger.Error, GormLogLevel("ERROR"))
	assert.Equal(t, logger.Info, GormLogLevel("info"))
	assert.Equal(t, logger.Warn, GormLogLevel(""))
}
