// Package server holds the MCP server's shared runtime state and its
// HTTP sidecars.
//
// ServerContext carries the TickTick client and write-protection mode into
// every tool handler and owns the shutdown lifecycle. HealthChecker serves
// Kubernetes-style liveness and readiness probes for the streamable-http
// transport, and MetricsServer exposes Prometheus metrics on a dedicated
// port so scrapes never touch the MCP endpoint.
package server
