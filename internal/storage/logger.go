package storage

import (
	"context"
	"time"

	"traderjoe/internal/logx"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// Logger routes gorm output to the "storage.gorm" logger.
var Logger logger.Interface = logrusLogger{}

type logrusLogger struct{}

func (l logrusLogger) entry(ctx context.Context) *logrus.Entry {
	return logx.Get("storage.gorm").WithContext(ctx)
}

func (l logrusLogger) LogMode(level logger.LogLevel) logger.Interface {
	return l
}

func (l logrusLogger) Info(ctx context.Context, s string, i ...any) {
	l.entry(ctx).Infof(s, i...)
}

func (l logrusLogger) Warn(ctx context.Context, s string, i ...any) {
	l.entry(ctx).Warnf(s, i...)
}

func (l logrusLogger) Error(ctx context.Context, s string, i ...any) {
	l.entry(ctx).Errorf(s, i...)
}

func (l logrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	sql, rowsAffected := fc()
	entry := l.entry(ctx).WithField("elapsed", time.Since(begin))
	if err != nil {
		entry.Debugf("%s (%d): %v", sql, rowsAffected, err)
		return
	}

	entry.Tracef("%s (%d)", sql, rowsAffected)
}
