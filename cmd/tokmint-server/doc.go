// Package main provides the entry point for tokmint-server.
//
// The server generates the configured tokens for every HTTP request,
// returns those with a header target as response headers, and echoes all
// of them as JSON. Scopes are reloaded when the configuration file
// changes or the process receives SIGHUP.
//
// Usage:
//
//	tokmint-server --config /etc/tokmint/tokmint.yaml
//	tokmint-server --config tokmint.yaml --addr :8080 --log-level debug
package main
