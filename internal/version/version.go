// Package version holds build information set through -ldflags.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/illumination-k/token-helper/internal/version.Version=v1.2.3".
var Version = "dev"
