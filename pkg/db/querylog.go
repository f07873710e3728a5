package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/storefront/pkg/logger"
)

// queryLog routes gorm's trace output into the service logger. Only slow
// statements and real failures are reported; missing rows are expected.
type queryLog struct {
	logg *logger.Logger
	slow time.Duration
}

func newQueryLog(logg *logger.Logger, slow time.Duration) gormlogger.Interface {
	if logg == nil {
		return gormlogger.Discard
	}
	return &queryLog{logg: logg, slow: slow}
}

func (q *queryLog) LogMode(gormlogger.LogLevel) gormlogger.Interface { return q }

func (q *queryLog) Info(ctx context.Context, msg string, _ ...any) { q.logg.Debug(ctx, msg) }
func (q *queryLog) Warn(ctx context.Context, msg string, _ ...any) { q.logg.Warn(ctx, msg) }
func (q *queryLog) Error(ctx context.Context, msg string, _ ...any) {
	q.logg.Error(ctx, msg, nil)
}

func (q *queryLog) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	if !failed && (q.slow <= 0 || elapsed < q.slow) {
		return
	}
	sql, rows := fc()
	ctx = q.logg.WithFields(ctx, map[string]any{
		"sql":         sql,
		"rows":        rows,
		"duration_ms": elapsed.Milliseconds(),
	})
	if failed {
		q.logg.Warn(q.logg.WithField(ctx, "error", err.Error()), "db.query_failed")
		return
	}
	q.logg.Warn(ctx, "db.slow_query")
}
