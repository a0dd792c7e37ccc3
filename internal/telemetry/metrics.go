// Package telemetry provides the metrics hook for the identity resolver.
// The resolver depends only on the Recorder interface; hosts that install an
// OpenTelemetry SDK get real counters, everything else gets the no-op.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Recorder records resolution outcomes.
type Recorder interface {
	// RecordResolution counts one finished resolution. process is "login" or
	// "signup"; outcome is "resolved" or the failure kind.
	RecordResolution(ctx context.Context, process, outcome string)
}

// NopRecorder discards all measurements.
type NopRecorder struct{}

func (NopRecorder) RecordResolution(context.Context, string, string) {}

var _ Recorder = NopRecorder{}

// OTelRecorder records resolutions on an OpenTelemetry counter. It uses the
// globally registered MeterProvider, so it is a no-op until the host process
// installs an SDK.
type OTelRecorder struct {
	resolutions metric.Int64Counter
}

// NewOTelRecorder returns a Recorder backed by the global meter.
func NewOTelRecorder() (*OTelRecorder, error) {
	meter := otel.Meter("soapee/backend/identity")
	resolutions, err := meter.Int64Counter("identity_resolutions_total",
		metric.WithDescription("Finished signup-or-login resolutions by process and outcome"))
	if err != nil {
		return nil, err
	}
	return &OTelRecorder{resolutions: resolutions}, nil
}

func (r *OTelRecorder) RecordResolution(ctx context.Context, process, outcome string) {
	r.resolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("process", process),
		attribute.String("outcome", outcome),
	))
}

var _ Recorder = (*OTelRecorder)(nil)
