package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/archerandash/storefront/internal/infrastructure/config"
)

func TestSetup_Disabled(t *testing.T) {
	ctx := context.Background()
	p, err := Setup(ctx, config.TelemetryConfig{Enabled: false, ProfilingEnabled: true}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.Tracer.IsEnabled())
	assert.False(t, p.Meter.IsEnabled())
	assert.False(t, p.Logs.IsEnabled())
	assert.False(t, p.Profiler.IsEnabled())
	assert.False(t, p.Tracer.SpanProfilesEnabled())

	_, err = NewStoreMetrics(p.Meter.Meter("test"))
	require.NoError(t, err)
	assert.Equal(t, zapcore.NewNopCore(), NewZapCore(p.Logs, "storefront", zapcore.InfoLevel))

	require.NoError(t, p.Shutdown(ctx))
}

func TestRegisterGormTracing_DisabledIsNoop(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, RegisterGormTracing(db, config.TelemetryConfig{Enabled: true}, zap.NewNop()))
	assert.Nil(t, db.Callback().Query().Get(slowQueryCallbackName+":after_query"))
}

func TestRegisterGormTracing_Enabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.TelemetryConfig{Enabled: true, DBTraceEnabled: true}
	require.NoError(t, RegisterGormTracing(db, cfg, zap.NewNop()))
	assert.NotNil(t, db.Callback().Query().Get(slowQueryCallbackName+":after_query"))
}

func TestSpanHelpers(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer(TracerName).Start(context.Background(), "checkout.capture")
	assert.NotEmpty(t, GetTraceID(ctx))
	assert.NotEmpty(t, GetSpanID(ctx))

	SetAttributes(span, SpanAttrPaypalOrderID, "PAY-1", "quantity", 2, 42, "ignored")
	RecordError(span, errors.New("declined"))
	RecordError(span, nil)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Len(t, ended[0].Attributes(), 2)
	assert.Len(t, ended[0].Events(), 1)

	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetSpanID(context.Background()))
}

func TestLevelFilterCore(t *testing.T) {
	core := &levelFilterCore{Core: zapcore.NewNopCore(), minLevel: zapcore.WarnLevel}
	assert.False(t, core.Enabled(zapcore.InfoLevel))
	// the nop core reports every level disabled
	assert.False(t, core.Enabled(zapcore.ErrorLevel))

	entry := zapcore.Entry{Level: zapcore.InfoLevel}
	assert.Nil(t, core.Check(entry, nil))
	assert.IsType(t, &levelFilterCore{}, core.With(nil))
}
