package config

import (
	"os/exec"
	"runtime"
	"strings"

	"go.trai.ch/keel/internal/core/domain"
)

var goosToOS = map[string]string{
	"linux":   "Linux",
	"darwin":  "Macos",
	"windows": "Windows",
	"freebsd": "FreeBSD",
	"android": "Android",
}

var goarchToArch = map[string]string{
	"amd64":   "x86_64",
	"386":     "x86",
	"arm64":   "armv8",
	"arm":     "armv7",
	"ppc64le": "ppc64le",
	"s390x":   "s390x",
	"wasm":    "wasm",
}

// DetectProfile describes the running machine. The compiler version is
// probed from the installed compiler when possible.
func (l *Loader) DetectProfile() *domain.Profile {
	return l.detect(runtime.GOOS, runtime.GOARCH)
}

func (l *Loader) detect(goos, goarch string) *domain.Profile {
	p := &domain.Profile{Name: "detected"}
	if name, ok := goosToOS[goos]; ok {
		p.SetSetting("os", name)
	}
	if arch, ok := goarchToArch[goarch]; ok {
		p.SetSetting("arch", arch)
	}
	p.SetSetting("build_type", "Release")

	switch goos {
	case "darwin":
		p.SetSetting("compiler", "apple-clang")
		p.SetSetting("compiler.version", l.probeMajor("15", "clang", "-dumpversion"))
		p.SetSetting("compiler.libcxx", "libc++")
	case "windows":
		p.SetSetting("compiler", "msvc")
		p.SetSetting("compiler.version", "193")
		p.SetSetting("compiler.runtime", "dynamic")
	default:
		p.SetSetting("compiler", "gcc")
		p.SetSetting("compiler.version", l.probeMajor("13", "gcc", "-dumpversion"))
		p.SetSetting("compiler.libcxx", "libstdc++11")
	}

	if l.Logger != nil {
		l.Logger.Info("detected profile for " + goos + "/" + goarch)
	}
	return p
}

func (l *Loader) probeMajor(fallback, name string, args ...string) string {
	if l.Probe == nil {
		return fallback
	}
	out, err := l.Probe(name, args...)
	if err != nil || out == "" {
		return fallback
	}
	major, _, _ := strings.Cut(out, ".")
	return major
}

func runProbe(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output() //nolint:gosec // fixed compiler probes
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
