// Package observe provides link.Monitor implementations: Prometheus
// metrics and OpenTelemetry tracing for stylesheet load activity.
package observe
