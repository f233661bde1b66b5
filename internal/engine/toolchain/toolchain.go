// Package toolchain turns aggregated package metadata into compiler and
// linker flags. A Toolchain composes three independent strategies: the
// target platform, the compiler family and the output format.
package toolchain

import (
	"io"

	"go.trai.ch/keel/internal/core/domain"
)

// Platform captures the conventions of the target operating system.
type Platform interface {
	// Name is the value of the os setting.
	Name() string
	// RuntimeDirFlags returns the linker flags that let binaries find shared
	// libraries in dirs at run time.
	RuntimeDirFlags(dirs []string) []string
}

// Compiler captures the flag syntax and C++ standard support of a compiler family.
type Compiler interface {
	// Name is the value of the compiler setting.
	Name() string
	IncludeFlag(dir string) string
	DefineFlag(define string) string
	LibDirFlag(dir string) string
	LibFlag(lib string) string
	// CppstdFlag returns the flag selecting a standard, "" when unsupported.
	CppstdFlag(cppstd string) string
	// DefaultCppstd is the standard the compiler version uses without flags.
	DefaultCppstd(version string) string
	// Cppstds lists the standards the compiler version supports, oldest first.
	Cppstds(version string) []string
}

// Format renders flags.
type Format interface {
	Name() string
	Render(w io.Writer, flags Flags) error
}

// Flags are rendered compiler and linker arguments.
type Flags struct {
	CppFlags []string `yaml:"cppflags"`
	CFlags   []string `yaml:"cflags"`
	CxxFlags []string `yaml:"cxxflags"`
	LdFlags  []string `yaml:"ldflags"`
	Libs     []string `yaml:"libs"`
}

// Toolchain is one platform x compiler x format combination.
type Toolchain struct {
	Platform Platform
	Compiler Compiler
	Format   Format
}

// Flags renders view for the given compiler version and standard. An empty
// cppstd selects no standard flag.
func (t Toolchain) Flags(view domain.ComponentView, cppstd string) Flags {
	var f Flags
	for _, dir := range view.IncludeDirs {
		f.CppFlags = append(f.CppFlags, t.Compiler.IncludeFlag(dir))
	}
	for _, def := range view.Defines {
		f.CppFlags = append(f.CppFlags, t.Compiler.DefineFlag(def))
	}
	f.CFlags = append(f.CFlags, view.CFlags...)
	if flag := t.Compiler.CppstdFlag(cppstd); flag != "" {
		f.CxxFlags = append(f.CxxFlags, flag)
	}
	f.CxxFlags = append(f.CxxFlags, view.CxxFlags...)
	for _, dir := range view.LibDirs {
		f.LdFlags = append(f.LdFlags, t.Compiler.LibDirFlag(dir))
	}
	f.LdFlags = append(f.LdFlags, t.Platform.RuntimeDirFlags(view.LibDirs)...)
	f.LdFlags = append(f.LdFlags, view.LinkFlags...)
	for _, lib := range view.Libs {
		f.Libs = append(f.Libs, t.Compiler.LibFlag(lib))
	}
	for _, lib := range view.SystemLibs {
		f.Libs = append(f.Libs, t.Compiler.LibFlag(lib))
	}
	return f
}

// Render writes flags in the toolchain's format.
func (t Toolchain) Render(w io.Writer, view domain.ComponentView, cppstd string) error {
	return t.Format.Render(w, t.Flags(view, cppstd))
}
