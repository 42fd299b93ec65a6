// Package logger provides structured logging for tokmint.
//
// This package wraps zap for structured logging:
//
//   - logger.go: Logger interface, levels and the process-wide default
//   - zap.go: zap core construction with optional lumberjack file rotation
//   - context.go: Context-aware logging with request/trace IDs
//   - redact.go: Sensitive field redaction
//
// Features:
//
//   - JSON and console output formats
//   - Runtime log level adjustment
//   - Automatic masking of signing keys and other secrets
//   - Context propagation for request tracing
package logger
