// Package buildinfo exposes the version, commit and build time of the
// tokmint binaries.
package buildinfo
