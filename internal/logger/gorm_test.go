package logger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func query() (string, int64) { return "SELECT * FROM products WHERE id = ?", 0 }

func TestGormLogger_Trace(t *testing.T) {
	begin := time.Now()
	slowBegin := begin.Add(-time.Second)

	tests := []struct {
		name      string
		begin     time.Time
		err       error
		wantLevel zapcore.Level
		wantLogs  int
	}{
		{name: "fast success is not logged", begin: begin, wantLogs: 0},
		{name: "missing row", begin: begin, err: gorm.ErrRecordNotFound, wantLevel: zapcore.DebugLevel, wantLogs: 1},
		{name: "unique violation", begin: begin, err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), wantLevel: zapcore.DebugLevel, wantLogs: 1},
		{name: "driver failure", begin: begin, err: errors.New("connection reset"), wantLevel: zapcore.ErrorLevel, wantLogs: 1},
		{name: "slow query", begin: slowBegin, wantLevel: zapcore.WarnLevel, wantLogs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			l := NewGormLogger(zap.New(core), 100*time.Millisecond)

			l.Trace(context.Background(), tt.begin, query, tt.err)

			require.Equal(t, tt.wantLogs, logs.Len())
			if tt.wantLogs == 0 {
				return
			}
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, "gorm.query", entry.Message)
			assert.Equal(t, "gorm", entry.ContextMap()["component"])
			assert.Equal(t, "SELECT * FROM products WHERE id = ?", entry.ContextMap()["sql"])
		})
	}
}

func TestGormLogger_LogMode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := NewGormLogger(zap.New(core), time.Millisecond)

	silent := base.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now().Add(-time.Second), query, errors.New("boom"))
	silent.Warn(context.Background(), "ignored")
	assert.Equal(t, 0, logs.Len())

	// LogMode returns a copy; the original keeps its level.
	base.Warn(context.Background(), "pool exhausted")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestGormLogger_ParamsFilter(t *testing.T) {
	l := NewGormLogger(zap.NewNop(), 0)

	sql, params := l.ParamsFilter(context.Background(), "SELECT 1 WHERE email = ?", "a@x.com")
	assert.Equal(t, "SELECT 1 WHERE email = ?", sql)
	assert.Nil(t, params)
}
