// Package httpserver provides the HTTP/HTTPS server for tokmint.
//
// Every request outside the health and metrics endpoints runs through the
// Tokens middleware, which generates the tokens of the matching scope,
// emits those with a header target on the response, and stores all of
// them in the request context. The default handler echoes them as JSON.
//
// Middleware order: RequestID, Recover, AccessLog, RateLimit, Tokens.
package httpserver
