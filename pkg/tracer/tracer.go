package tracer

import (
	"context"
	"fmt"

	cfgpkg "github.com/fatflowers/hms-payment/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// New returns the process tracer provider. With tracing disabled it is a no-op provider;
// otherwise spans are batched to an OTLP/HTTP collector and flushed on fx stop.
func New(lc fx.Lifecycle, cfg *cfgpkg.Config, log *zap.SugaredLogger) (trace.TracerProvider, error) {
	if !cfg.Tracing.Enabled {
		log.Infow("tracing_disabled")
		return noop.NewTracerProvider(), nil
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.Tracing.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfgpkg.ServiceName),
			attribute.String("deployment.environment", string(cfg.Env)),
		)),
	)
	otel.SetTracerProvider(tp)
	log.Infow("tracing_enabled", "endpoint", cfg.Tracing.Endpoint)

	lc.Append(fx.StopHook(tp.Shutdown))
	return tp, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
