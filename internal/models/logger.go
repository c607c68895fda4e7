package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration above which a query is logged as a warning.
const slowQuery = 200 * time.Millisecond

// queryLog writes gorm output to zerolog. Lookups that find nothing are
// part of normal operation and stay at debug level.
type queryLog struct {
	z zerolog.Logger
}

func newQueryLog(z zerolog.Logger) gorm_logger.Interface {
	return queryLog{z: z.With().Str("component", "gorm").Logger()}
}

// LogMode is a no-op, the level is controlled by zerolog.
func (q queryLog) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return q
}

func (q queryLog) Info(_ context.Context, msg string, args ...any) {
	q.z.Info().Msgf(msg, args...)
}

func (q queryLog) Warn(_ context.Context, msg string, args ...any) {
	q.z.Warn().Msgf(msg, args...)
}

func (q queryLog) Error(_ context.Context, msg string, args ...any) {
	q.z.Error().Msgf(msg, args...)
}

func (q queryLog) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	took := time.Since(begin)
	sql, rows := fc()

	var e *zerolog.Event
	switch {
	case err != nil && !notFound(err):
		e = q.z.Error().Err(err)
	case took > slowQuery:
		e = q.z.Warn().Bool("slow", true)
	default:
		e = q.z.Debug()
	}

	e.Str("sql", sql).Int64("rows", rows).Dur("duration", took).Msg("query")
}

func notFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm_logger.ErrRecordNotFound)
}
