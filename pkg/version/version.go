// Package version holds the build version of tfmatrix.
package version

// Version is set at build time with -ldflags "-X github.com/cloudposse/tfmatrix/pkg/version.Version=<tag>".
var Version = "0.0.1"
