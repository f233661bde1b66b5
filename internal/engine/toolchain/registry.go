package toolchain

import (
	"slices"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

const cppstdSetting = "compiler.cppstd"

// Registry holds the known strategies by name.
type Registry struct {
	platforms map[string]Platform
	compilers map[string]Compiler
	formats   map[string]Format
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		platforms: make(map[string]Platform),
		compilers: make(map[string]Compiler),
		formats:   make(map[string]Format),
	}
}

// DefaultRegistry returns a Registry with the built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterPlatform(unixPlatform{name: "Linux"})
	r.RegisterPlatform(unixPlatform{name: "Macos"})
	r.RegisterPlatform(unixPlatform{name: "FreeBSD"})
	r.RegisterPlatform(unixPlatform{name: "Android"})
	r.RegisterPlatform(windowsPlatform{})
	r.RegisterCompiler(gnuCompiler{name: "gcc", table: gccCppstds, defaults: gccDefault})
	r.RegisterCompiler(gnuCompiler{name: "clang", table: clangCppstds, defaults: clangDefault})
	r.RegisterCompiler(gnuCompiler{name: "apple-clang", table: appleCppstds, defaults: appleDefault})
	r.RegisterCompiler(msvcCompiler{})
	r.RegisterFormat(textFormat{})
	r.RegisterFormat(envFormat{})
	r.RegisterFormat(yamlFormat{})
	return r
}

// RegisterPlatform adds or replaces a platform.
func (r *Registry) RegisterPlatform(p Platform) { r.platforms[p.Name()] = p }

// RegisterCompiler adds or replaces a compiler.
func (r *Registry) RegisterCompiler(c Compiler) { r.compilers[c.Name()] = c }

// RegisterFormat adds or replaces a format.
func (r *Registry) RegisterFormat(f Format) { r.formats[f.Name()] = f }

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Compiler returns the compiler registered under name.
func (r *Registry) Compiler(name string) (Compiler, bool) {
	c, ok := r.compilers[name]
	return c, ok
}

func unknown(kind, name string) error {
	err := zerr.Wrap(domain.ErrUnknownToolchain, kind+" "+name)
	return zerr.With(zerr.With(err, "kind", kind), "name", name)
}

// Toolchain composes the strategies for a platform, compiler and format.
func (r *Registry) Toolchain(os, compiler, format string) (Toolchain, error) {
	p, ok := r.platforms[os]
	if !ok {
		return Toolchain{}, unknown("platform", os)
	}
	c, ok := r.compilers[compiler]
	if !ok {
		return Toolchain{}, unknown("compiler", compiler)
	}
	f, ok := r.formats[format]
	if !ok {
		return Toolchain{}, unknown("format", format)
	}
	return Toolchain{Platform: p, Compiler: c, Format: f}, nil
}

// CppstdVariants proposes the identity inputs of the same binary built with
// every other standard the compiler version supports, oldest first. A
// standard equal to the compiler default is represented as unset. Nil is
// returned when the compiler is unknown.
func (r *Registry) CppstdVariants(info *domain.PackageInfo) []*domain.PackageInfo {
	name, ok := info.Settings.Get("compiler")
	if !ok {
		return nil
	}
	c, ok := r.compilers[name]
	if !ok {
		return nil
	}
	version, _ := info.Settings.Get("compiler.version")
	def := stdNumber(c.DefaultCppstd(version))

	current, ok := info.Settings.Get(cppstdSetting)
	if !ok {
		current = def
	}
	current = stdNumber(current)

	var variants []*domain.PackageInfo
	for _, std := range c.Cppstds(version) {
		if std == current {
			continue
		}
		v := info.Clone()
		if std == def {
			v.Settings.Remove(cppstdSetting)
		} else {
			v.Settings.Set(cppstdSetting, std)
		}
		variants = append(variants, v)
	}
	return variants
}

// Cppstd returns the standard a node is built with: its setting, or the
// compiler default.
func (r *Registry) Cppstd(settings *domain.Settings) string {
	if std, ok := settings.Get(cppstdSetting); ok {
		return std
	}
	name, _ := settings.Get("compiler")
	c, ok := r.compilers[name]
	if !ok {
		return ""
	}
	version, _ := settings.Get("compiler.version")
	return c.DefaultCppstd(version)
}
