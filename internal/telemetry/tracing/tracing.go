package tracing

import (
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("workouts-backend")

// HoneycombSetup configures the OpenTelemetry SDK via the honeycomb distro.
// When tracing is disabled, spans go to the default noop tracer provider and
// the returned shutdown func is a no-op.
func HoneycombSetup(tracingEnabled bool, serviceName string) (shutdown func(), err error) {
	if !tracingEnabled {
		log.Debugln("tracing disabled, honeycomb setup skipped")
		return func() {}, nil
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
	)
	if err != nil {
		return nil, err
	}

	return otelShutdown, nil
}

func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	span.End()
}
