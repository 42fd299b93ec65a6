// Package main provides the entry point for tokmint-cli.
//
// tokmint-cli runs the token engine locally against a server
// configuration file, for checking what a request path would receive
// before deploying the configuration.
//
// Usage:
//
//	tokmint-cli generate --config tokmint.yaml --path /forms/login
//	tokmint-cli -o json generate -c tokmint.yaml -p /api/v1/x -n 3 --interval 10s
//	tokmint-cli config validate --config tokmint.yaml
package main
