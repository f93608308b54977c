// Package telemetry provides structured logging, metrics, and tracing for
// agentkit.
//
// Logging builds a zerolog logger from configuration (level, format,
// output destination). Metrics are Prometheus collectors scoped to a private
// registry, so independent invocations do not share collector state.
// Tracing uses OpenTelemetry with a stdout exporter for local debugging;
// it is disabled by default.
//
// All three are created from a single Config:
//
//	cfg := telemetry.DefaultConfig()
//	logger, err := telemetry.NewLogger(cfg.Logging)
//	metrics, err := telemetry.NewMetrics(cfg.Metrics)
//	tracer, err := telemetry.NewTracer(cfg.Tracing, cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
package telemetry
