// Package build holds build-time information.
package build

// Version is the version reported by keel. Release builds set it with
// -ldflags "-X go.trai.ch/keel/internal/build.Version=...".
var Version = "dev"
