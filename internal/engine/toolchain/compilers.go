package toolchain

import (
	"strconv"
	"strings"
)

// cppstdMin lists each standard with the first compiler major supporting it.
type cppstdMin struct {
	std string
	min int
}

func major(version string) int {
	head, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return n
}

func supported(table []cppstdMin, version string) []string {
	v := major(version)
	var out []string
	for _, entry := range table {
		if v >= entry.min {
			out = append(out, entry.std)
		}
	}
	return out
}

// gnuCompiler covers gcc, clang and apple-clang, which share flag syntax.
type gnuCompiler struct {
	name     string
	table    []cppstdMin
	defaults []cppstdMin
}

func (c gnuCompiler) Name() string                { return c.name }
func (gnuCompiler) IncludeFlag(dir string) string { return "-I" + dir }
func (gnuCompiler) DefineFlag(def string) string  { return "-D" + def }
func (gnuCompiler) LibDirFlag(dir string) string  { return "-L" + dir }
func (gnuCompiler) LibFlag(lib string) string     { return "-l" + lib }

func (gnuCompiler) CppstdFlag(cppstd string) string {
	if cppstd == "" {
		return ""
	}
	if std, ok := strings.CutPrefix(cppstd, "gnu"); ok {
		return "-std=gnu++" + std
	}
	return "-std=c++" + cppstd
}

func (c gnuCompiler) DefaultCppstd(version string) string {
	v := major(version)
	def := ""
	for _, entry := range c.defaults {
		if v >= entry.min {
			def = entry.std
		}
	}
	return def
}

func (c gnuCompiler) Cppstds(version string) []string {
	return supported(c.table, version)
}

type msvcCompiler struct{}

var msvcTable = []cppstdMin{{"14", 190}, {"17", 191}, {"20", 192}, {"23", 193}}

func (msvcCompiler) Name() string                  { return "msvc" }
func (msvcCompiler) IncludeFlag(dir string) string { return "/I" + dir }
func (msvcCompiler) DefineFlag(def string) string  { return "/D" + def }
func (msvcCompiler) LibDirFlag(dir string) string  { return "/LIBPATH:" + dir }

func (msvcCompiler) LibFlag(lib string) string {
	if strings.HasSuffix(lib, ".lib") {
		return lib
	}
	return lib + ".lib"
}

func (msvcCompiler) CppstdFlag(cppstd string) string {
	switch cppstd {
	case "14", "17", "20":
		return "/std:c++" + cppstd
	case "23":
		return "/std:c++latest"
	default:
		return ""
	}
}

func (msvcCompiler) DefaultCppstd(string) string { return "14" }

func (msvcCompiler) Cppstds(version string) []string {
	return supported(msvcTable, version)
}

var (
	gccCppstds = []cppstdMin{{"98", 0}, {"11", 0}, {"14", 5}, {"17", 5}, {"20", 8}, {"23", 11}}
	gccDefault = []cppstdMin{{"gnu98", 0}, {"gnu14", 6}, {"gnu17", 11}}

	clangCppstds = []cppstdMin{{"98", 0}, {"11", 0}, {"14", 4}, {"17", 5}, {"20", 10}, {"23", 12}}
	clangDefault = []cppstdMin{{"gnu98", 0}, {"gnu14", 6}, {"gnu17", 16}}

	appleCppstds = []cppstdMin{{"98", 0}, {"11", 0}, {"14", 0}, {"17", 10}, {"20", 13}, {"23", 16}}
	appleDefault = []cppstdMin{{"gnu98", 0}}
)

func stdNumber(cppstd string) string {
	return strings.TrimPrefix(cppstd, "gnu")
}
