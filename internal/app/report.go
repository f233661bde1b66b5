package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/ui/output"
	"go.trai.ch/keel/internal/ui/style"
)

type printer struct {
	renderer *lipgloss.Renderer
	b        strings.Builder
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())
	return &printer{renderer: r}
}

func (p *printer) render(st lipgloss.Style, text string) string {
	return p.renderer.NewStyle().Inherit(st).Render(text)
}

func (p *printer) heading(text string) {
	p.b.WriteString(p.render(style.Heading, text) + "\n")
}

func (p *printer) line(indent int, format string, args ...any) {
	p.b.WriteString(strings.Repeat("    ", indent))
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteByte('\n')
}

func (p *printer) flush(w io.Writer) error {
	_, err := io.WriteString(w, p.b.String())
	return err
}

func (p *printer) status(s domain.BinaryStatus) string {
	switch s {
	case domain.BinaryCache, domain.BinaryDownload:
		return p.render(style.Success, string(s))
	case domain.BinaryBuild:
		return p.render(style.Notice, string(s))
	case domain.BinaryMissing:
		return p.render(style.Failure, string(s))
	default:
		return p.render(style.Muted, string(s))
	}
}

// writeInstall lists the binaries of the graph, HOST packages first.
func writeInstall(w io.Writer, g *domain.Graph) error {
	p := newPrinter(w)
	for _, section := range []struct {
		title   string
		context domain.Context
	}{
		{"Requirements", domain.ContextHost},
		{"Build requirements", domain.ContextBuild},
	} {
		var nodes []*domain.Node
		for _, n := range g.OrderedIterate() {
			if !n.Virtual && n.Context == section.context {
				nodes = append(nodes, n)
			}
		}
		if len(nodes) == 0 {
			continue
		}
		p.heading(section.title)
		for _, n := range nodes {
			p.line(1, "%s - %s", n.BinaryRef(), p.status(n.BinaryStatus))
		}
	}
	return p.flush(w)
}

// writeInfo describes every node of the graph in dependency order.
func writeInfo(w io.Writer, g *domain.Graph) error {
	p := newPrinter(w)
	for _, n := range g.OrderedIterate() {
		if n.Virtual {
			continue
		}
		p.heading(n.Ref.String())
		p.line(1, "context: %s", n.Context)
		p.line(1, "package_id: %s", n.PackageID())
		if n.ResolvedPackageID != "" && n.ResolvedPackageID != n.PackageID() {
			p.line(1, "compatible_package_id: %s", n.ResolvedPackageID)
		}
		p.line(1, "binary: %s", p.status(n.BinaryStatus))
		if n.Deferred.Failed() {
			p.line(1, "invalid: %s", p.render(style.Failure, n.Deferred.Reason()))
		}
		writeValues(p, "settings", n.Settings.Values())
		writeValues(p, "options", n.Options.Values())

		var requires, tools []string
		for _, e := range n.Dependencies {
			switch {
			case e.Require.Override:
			case e.Require.Build:
				tools = append(tools, e.Dst.Ref.String())
			default:
				requires = append(requires, e.Dst.Ref.String())
			}
		}
		writeList(p, "requires", requires)
		writeList(p, "build_requires", tools)

		var requiredBy []string
		for _, src := range g.Requirers(n) {
			if src.Virtual {
				requiredBy = append(requiredBy, "consumer")
				continue
			}
			requiredBy = append(requiredBy, src.Ref.String())
		}
		writeList(p, "required_by", requiredBy)
	}
	return p.flush(w)
}

func writeValues(p *printer, title string, values []domain.KeyValue) {
	if len(values) == 0 {
		return
	}
	p.line(1, "%s:", title)
	for _, kv := range values {
		p.line(2, "%s=%s", kv.Key, kv.Value)
	}
}

func writeList(p *printer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	p.line(1, "%s:", title)
	for _, item := range items {
		p.line(2, "%s", item)
	}
}
