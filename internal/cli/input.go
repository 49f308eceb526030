// Package cli drives one autocomplete field from the terminal, for debugging the
// lookup pipeline in real-time.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/bastiangx/citycomplete/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// InputHandler feeds lines from the terminal to a field's controller and prints
// whatever the field renders. Plain lines are typed text; lines starting with
// ':' are events:
//
//	:down :up :enter :esc   navigation keys
//	:click N                pick the N-th suggestion (1-based)
//	:focus :blur            focus the field, click outside it
//	:show                   print what the field currently shows
//	:q                      quit
type InputHandler struct {
	controller *suggest.Controller
	binding    *suggest.FieldBinding
	showRegion bool

	mu     sync.Mutex
	out    io.Writer
	match  lipgloss.Style
	cursor lipgloss.Style
	faint  lipgloss.Style
}

// NewInputHandler creates the handler and its field.
func NewInputHandler(finder suggest.Finder, opts suggest.Options, field string, showRegion bool, out io.Writer) *InputHandler {
	r := lipgloss.NewRenderer(out)
	h := &InputHandler{
		binding:    suggest.NewFieldBinding(field),
		showRegion: showRegion,
		out:        out,
		match:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		cursor:     r.NewStyle().Reverse(true),
		faint:      r.NewStyle().Faint(true),
	}
	h.binding.OnChange(h.printCommit)
	h.controller = suggest.NewController(field, opts, finder, h, h.binding)
	return h
}

// Binding returns the field driven by the handler.
func (h *InputHandler) Binding() *suggest.FieldBinding {
	return h.binding
}

// Close stops the field.
func (h *InputHandler) Close() {
	h.controller.Destroy()
}

// Start begins the interface loop. It returns nil on :q or end of input.
func (h *InputHandler) Start(in io.Reader) error {
	defer h.Close()
	h.println("citycomplete CLI [BETA]")
	h.println("type a city, :down/:up/:enter/:esc to pick one, :q to exit")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !h.handleLine(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// handleLine processes one line. It reports false when the user asked to quit.
func (h *InputHandler) handleLine(line string) bool {
	if !strings.HasPrefix(line, ":") {
		h.controller.Input(line)
		return true
	}

	cmd, arg, _ := strings.Cut(strings.TrimSpace(line[1:]), " ")
	switch cmd {
	case "q", "quit":
		return false
	case "focus":
		h.controller.Focus()
	case "blur":
		h.controller.Dismiss()
	case "show":
		v := h.controller.Snapshot()
		if v.State == suggest.ViewClosed {
			h.println(h.faint.Render("(closed)"))
			return true
		}
		h.Render(v)
	case "click":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			log.Errorf("Usage: :click N")
			return true
		}
		h.controller.Click(n - 1)
	default:
		key, ok := suggest.ParseKey(cmd)
		if !ok {
			log.Errorf("Unknown command: %s", line)
			return true
		}
		h.controller.Key(key)
	}
	return true
}

// Render prints the field's list.
func (h *InputHandler) Render(v suggest.View) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch v.State {
	case suggest.ViewClosed:
		return
	case suggest.ViewLoading:
		fmt.Fprintln(h.out, h.faint.Render("searching "+v.Query+"..."))
	case suggest.ViewEmpty:
		fmt.Fprintln(h.out, "Город не найден")
	case suggest.ViewError:
		log.Errorf("Lookup for %q failed: %v", v.Query, v.Err)
	case suggest.ViewList:
		for i, c := range v.Items {
			line := fmt.Sprintf("%2d. %s", i+1, h.highlight(c.Name, v.Query))
			if h.showRegion && c.Region != "" {
				line += " " + h.faint.Render(c.Region)
			}
			if i == v.Highlighted {
				line = h.cursor.Render(line)
			}
			fmt.Fprintln(h.out, line)
		}
		fmt.Fprintln(h.out, h.faint.Render(fmt.Sprintf("(%d from %s)", len(v.Items), v.Source)))
	}
}

func (h *InputHandler) highlight(text, query string) string {
	var b strings.Builder
	for _, seg := range suggest.Highlight(text, query) {
		if seg.Match {
			b.WriteString(h.match.Render(seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

func (h *InputHandler) printCommit(field string, c suggest.Candidate) {
	line := fmt.Sprintf("%s = %s", field, c.Name)
	if c.ID != "" {
		line += fmt.Sprintf(" (id %s)", c.ID)
	}
	h.println(line)
}

func (h *InputHandler) println(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintln(h.out, s)
}
