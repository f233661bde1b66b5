package toolchain

import (
	"fmt"
	"io"
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

type section struct {
	name   string
	values []string
}

func sections(f Flags) []section {
	return []section{
		{"CPPFLAGS", f.CppFlags},
		{"CFLAGS", f.CFlags},
		{"CXXFLAGS", f.CxxFlags},
		{"LDFLAGS", f.LdFlags},
		{"LIBS", f.Libs},
	}
}

// textFormat prints one NAME: flags line per non-empty section.
type textFormat struct{}

func (textFormat) Name() string { return "text" }

func (textFormat) Render(w io.Writer, f Flags) error {
	for _, s := range sections(f) {
		if len(s.values) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-9s %s\n", s.name+":", strings.Join(s.values, " ")); err != nil {
			return zerr.Wrap(err, "failed to write flags")
		}
	}
	return nil
}

// envFormat prints a sourceable shell script.
type envFormat struct{}

func (envFormat) Name() string { return "env" }

func (envFormat) Render(w io.Writer, f Flags) error {
	for _, s := range sections(f) {
		if _, err := fmt.Fprintf(w, "export %s=%s\n", s.name, shellQuote(strings.Join(s.values, " "))); err != nil {
			return zerr.Wrap(err, "failed to write flags")
		}
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

type yamlFormat struct{}

func (yamlFormat) Name() string { return "yaml" }

func (yamlFormat) Render(w io.Writer, f Flags) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return zerr.Wrap(err, "failed to encode flags")
	}
	return enc.Close()
}
