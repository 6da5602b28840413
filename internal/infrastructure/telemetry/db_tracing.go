package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/archerandash/storefront/internal/infrastructure/config"
)

type queryStartKey struct{}

const slowQueryCallbackName = "storefront:slow_query"

// RegisterGormTracing installs otelgorm on db and flags slow statements on
// their spans. It does nothing unless both telemetry and DB tracing are enabled.
// Query variables are never recorded: they carry customer emails and addresses.
func RegisterGormTracing(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}
	if err := db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName("postgresql"),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		return err
	}

	threshold := cfg.DBSlowQueryThresh
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { markSlowQuery(tx, threshold) }

	cb := db.Callback()
	for _, err := range []error{
		cb.Create().Before("gorm:create").Register(slowQueryCallbackName+":before_create", before),
		cb.Query().Before("gorm:query").Register(slowQueryCallbackName+":before_query", before),
		cb.Update().Before("gorm:update").Register(slowQueryCallbackName+":before_update", before),
		cb.Delete().Before("gorm:delete").Register(slowQueryCallbackName+":before_delete", before),
		cb.Raw().Before("gorm:raw").Register(slowQueryCallbackName+":before_raw", before),
		cb.Create().After("gorm:create").Register(slowQueryCallbackName+":after_create", after),
		cb.Query().After("gorm:query").Register(slowQueryCallbackName+":after_query", after),
		cb.Update().After("gorm:update").Register(slowQueryCallbackName+":after_update", after),
		cb.Delete().After("gorm:delete").Register(slowQueryCallbackName+":after_delete", after),
		cb.Raw().After("gorm:raw").Register(slowQueryCallbackName+":after_raw", after),
	} {
		if err != nil {
			return err
		}
	}

	logger.Info("Database tracing enabled", zap.Duration("slow_query_threshold", threshold))
	return nil
}

func markSlowQuery(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		RecordError(span, tx.Error)
	}
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
