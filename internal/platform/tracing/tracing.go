package tracing

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"pet-adoption-hub/internal/platform/logger"
)

// Setup instala un TracerProvider global que exporta por OTLP/HTTP.
// Sin endpoint no instala nada: otel queda con su provider no-op.
// Devuelve la función de shutdown (siempre no nil).
func Setup(ctx context.Context, endpoint, serviceName string, log logger.Logger) (func(context.Context) error, error) {
	log = logger.OrNop(log)
	noop := func(context.Context) error { return nil }

	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		log.Debug("tracing disabled", nil)
		return noop, nil
	}

	opts := []otlptracehttp.Option{}
	switch {
	case strings.HasPrefix(endpoint, "http://"):
		opts = append(opts, otlptracehttp.WithEndpointURL(endpoint), otlptracehttp.WithInsecure())
	case strings.HasPrefix(endpoint, "https://"):
		opts = append(opts, otlptracehttp.WithEndpointURL(endpoint))
	default:
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	}

	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}

	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	log.Info("tracing enabled", logger.Fields{"endpoint": endpoint, "service": serviceName})
	return tp.Shutdown, nil
}
