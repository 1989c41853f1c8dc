/*
Package observability provides tools for monitoring drag sessions.

Metrics exports Prometheus counters and a duration histogram fed by drake
events, and AuditHooks logs every lifecycle event through slog.
*/
package observability
