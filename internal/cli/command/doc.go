// Package command provides CLI command definitions for tokmint-cli.
//
// Commands run the token engine in-process against a server
// configuration file; nothing talks to a running tokmint-server.
//
//   - generate: produce the tokens a request path would receive
//   - config: validate, show or list the scopes of a configuration file
//   - version: print build information
package command
