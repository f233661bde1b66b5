package progrock

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/keel/internal/ui/output"
	"go.trai.ch/keel/internal/ui/style"
)

type vertexStatus int

const (
	statusRunning vertexStatus = iota
	statusCompleted
	statusCached
	statusFailed
)

type vertexState struct {
	id     string
	name   string
	status vertexStatus
	errMsg string
	logs   strings.Builder
}

// Summary is a progrock.Writer that keeps the latest state of every vertex
// and prints one line per vertex when closed. Logs are only printed under
// failed vertices.
type Summary struct {
	mu       sync.Mutex
	out      io.Writer
	renderer *lipgloss.Renderer
	vertices []*vertexState
	closed   bool
}

// NewSummary creates a Summary rendering to out.
func NewSummary(out io.Writer) *Summary {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(output.ColorProfile())
	return &Summary{out: out, renderer: r}
}

// WriteStatus implements progrock.Writer.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		s.apply(v)
	}
	for _, l := range update.Logs {
		if state := s.find(l.Vertex); state != nil {
			state.logs.Write(l.Data)
		}
	}
	return nil
}

func (s *Summary) apply(v *progrock.Vertex) {
	state := s.find(v.Id)
	if state == nil {
		state = &vertexState{id: v.Id, name: v.Name}
		s.vertices = append(s.vertices, state)
	}
	switch {
	case v.Error != nil:
		state.status = statusFailed
		state.errMsg = *v.Error
	case v.Cached:
		state.status = statusCached
	case v.Completed != nil:
		state.status = statusCompleted
	}
}

func (s *Summary) find(id string) *vertexState {
	for _, v := range s.vertices {
		if v.id == id {
			return v
		}
	}
	return nil
}

// Close renders the summary once.
func (s *Summary) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || len(s.vertices) == 0 {
		s.closed = true
		return nil
	}
	s.closed = true

	var b strings.Builder
	for _, v := range s.vertices {
		b.WriteString(s.line(v))
		b.WriteByte('\n')
		if v.status != statusFailed {
			continue
		}
		for _, l := range strings.Split(strings.TrimRight(v.logs.String(), "\n"), "\n") {
			if l != "" {
				b.WriteString("    " + s.renderer.NewStyle().Inherit(style.Muted).Render(l) + "\n")
			}
		}
	}
	_, err := io.WriteString(s.out, b.String())
	return err
}

func (s *Summary) line(v *vertexState) string {
	render := func(st lipgloss.Style, text string) string {
		return s.renderer.NewStyle().Inherit(st).Render(text)
	}
	switch v.status {
	case statusCompleted:
		return render(style.Success, style.Check) + " " + v.name
	case statusCached:
		return render(style.Muted, style.Check) + " " + v.name + " " + render(style.Muted, "(cached)")
	case statusFailed:
		return fmt.Sprintf("%s %s: %s", render(style.Failure, style.Cross), v.name, v.errMsg)
	default:
		return render(style.Notice, style.Dot) + " " + v.name
	}
}
