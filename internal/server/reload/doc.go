// Package reload rebuilds the scope registry of a running tokmint-server
// when its configuration file changes.
//
// A reload that fails to load or verify leaves the active scopes in
// place. A successful one swaps in freshly built scopes, so every token
// cache starts empty.
package reload
