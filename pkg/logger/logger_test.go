package logger

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aebalz/mindful-journal/internal/config"
)

func TestNew_WritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.AppConfig{
		AppName:           "test",
		AppEnv:            "test",
		LogLevel:          "info",
		LogFile:           path,
		LogFileMaxSizeMB:  1,
		LogFileMaxBackups: 1,
		LogFileMaxAgeDays: 1,
	}

	log := New(cfg)
	log.Info().Msg("hello file")
	log.Debug().Msg("filtered out")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
	assert.Contains(t, string(data), `"app":"test"`)
	assert.NotContains(t, string(data), "filtered out")
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	log := New(&config.AppConfig{AppEnv: "test", LogLevel: "loud"})
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	l := NewGormLogger(base, GormLoggerConfig{
		SlowThreshold:             time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
	fc := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), fc, errors.New("boom"))
	assert.Contains(t, buf.String(), "query failed")
	buf.Reset()

	l.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	assert.Contains(t, buf.String(), "slow query")
	buf.Reset()

	silent := l.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now(), fc, errors.New("boom"))
	assert.Empty(t, buf.String())
}
