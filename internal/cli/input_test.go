package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bastiangx/citycomplete/pkg/dictionary"
	"github.com/bastiangx/citycomplete/pkg/suggest"
	"github.com/charmbracelet/log"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestHandler(t *testing.T, out *syncBuffer) *InputHandler {
	t.Helper()
	log.SetLevel(log.FatalLevel)
	opts := suggest.DefaultOptions()
	opts.DebounceDelay = 5 * time.Millisecond
	h := NewInputHandler(suggest.NewFetcher(opts, nil, nil, dictionary.RegionalCities), opts, "from", true, out)
	t.Cleanup(h.Close)
	return h
}

func waitForState(t *testing.T, h *InputHandler, state suggest.ViewState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.controller.Snapshot().State == state {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", state)
}

// waitForOutput polls until out contains text.
func waitForOutput(t *testing.T, out *syncBuffer, text string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), text) {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in:\n%s", text, out.String())
}

func TestHandleLineCommit(t *testing.T) {
	out := &syncBuffer{}
	h := newTestHandler(t, out)

	h.handleLine("Ека")
	waitForState(t, h, suggest.ViewList)
	waitForOutput(t, out, "Свердловская область")

	h.handleLine(":down")
	h.handleLine(":enter")

	if h.Binding().Value() != "Екатеринбург" {
		t.Errorf("field = %q", h.Binding().Value())
	}
	if !strings.Contains(out.String(), "from = Екатеринбург (id 4)") {
		t.Errorf("commit not printed:\n%s", out.String())
	}
}

func TestHandleLineClickAndEmpty(t *testing.T) {
	out := &syncBuffer{}
	h := newTestHandler(t, out)

	h.handleLine("zz")
	waitForState(t, h, suggest.ViewEmpty)
	waitForOutput(t, out, "Город не найден")

	h.handleLine("Омс")
	waitForState(t, h, suggest.ViewList)
	h.handleLine(":click 1")
	if h.Binding().Value() != "Омск" {
		t.Errorf("field = %q", h.Binding().Value())
	}
}

func TestHandleLineCommands(t *testing.T) {
	h := newTestHandler(t, &syncBuffer{})

	testCases := []struct {
		line        string
		keepGoing   bool
		description string
	}{
		{":q", false, "Quit"},
		{":quit", false, "Quit long form"},
		{":bogus", true, "Unknown command keeps the loop alive"},
		{":click x", true, "Bad click argument"},
		{":esc", true, "Key on a closed list"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := h.handleLine(tc.line); got != tc.keepGoing {
				t.Errorf("handleLine(%q) = %v, want %v", tc.line, got, tc.keepGoing)
			}
		})
	}
}

func TestHandleLineShow(t *testing.T) {
	out := &syncBuffer{}
	h := newTestHandler(t, out)

	h.handleLine(":show")
	if !strings.Contains(out.String(), "(closed)") {
		t.Errorf("closed field not reported:\n%s", out.String())
	}

	h.handleLine("Каз")
	waitForState(t, h, suggest.ViewList)
	waitForOutput(t, out, "(1 from fallback)")

	h.handleLine(":show")
	if n := strings.Count(out.String(), "(1 from fallback)"); n != 2 {
		t.Errorf("expected the list printed twice, found %d:\n%s", n, out.String())
	}
}

func TestStartStopsOnQuit(t *testing.T) {
	out := &syncBuffer{}
	h := newTestHandler(t, out)

	if err := h.Start(strings.NewReader("М\n:q\nignored\n")); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !strings.Contains(out.String(), "citycomplete CLI") {
		t.Errorf("banner missing:\n%s", out.String())
	}
}
