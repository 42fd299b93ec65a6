// Package handler provides HTTP request handlers for tokmint-server.
//
// Endpoints:
//
//   - health.go: liveness and readiness checks
//   - tokens.go: JSON echo of the tokens generated for a request
//
// Token generation itself runs in the httpserver Tokens middleware; the
// handlers here only read the results it stores in the request context.
package handler
