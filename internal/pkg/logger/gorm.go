package logger

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SlogGormLogger 把 gorm 的 SQL 日志接入 slog，Dialect 用于区分 mysql 与测试用的 sqlite
type SlogGormLogger struct {
	LogLevel      logger.LogLevel
	Dialect       string
	SlowThreshold time.Duration
}

func NewGormLogger(dialect string) *SlogGormLogger {
	return &SlogGormLogger{LogLevel: logger.Info, Dialect: dialect, SlowThreshold: 200 * time.Millisecond}
}

func (l *SlogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	l.LogLevel = level
	return l
}

func (l *SlogGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Info {
		slog.InfoContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Warn {
		slog.WarnContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Error {
		slog.ErrorContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	operation, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	if operation == "" {
		operation = "Query"
	}
	msg := l.Dialect + " " + strings.ToUpper(operation)

	fields := []any{
		slog.String("sql", sql),
		slog.Duration("latency", elapsed),
		slog.Int64("rows", rows),
	}

	switch {
	case err == nil || errors.Is(err, gorm.ErrRecordNotFound):
		if elapsed > l.SlowThreshold {
			slog.WarnContext(ctx, msg+" Slow", fields...)
		} else if l.LogLevel >= logger.Info {
			slog.InfoContext(ctx, msg, fields...)
		}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// 重复举报等唯一约束冲突由业务层处理
		slog.WarnContext(ctx, msg+" Duplicate", append(fields, slog.Any("err", err))...)
	default:
		slog.ErrorContext(ctx, msg+" Error", append(fields, slog.Any("err", err))...)
	}
}
