// Package version holds the application version string.
// The value is overridden at build time via -ldflags.
package version

// Version is the current application version.
var Version = "dev"
