package suggest

import (
	"context"
	"strings"
	"sync"

	"github.com/bastiangx/citycomplete/internal/logger"
	"github.com/bastiangx/citycomplete/internal/metrics"
	"github.com/bastiangx/citycomplete/internal/utils"
	"github.com/charmbracelet/log"
)

// Key is a navigation key forwarded from the input field.
type Key int

const (
	KeyDown Key = iota
	KeyUp
	KeyEnter
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// ParseKey maps key names used by clients ("down", "ArrowDown", "esc", ...) to a Key.
func ParseKey(name string) (Key, bool) {
	switch strings.ToLower(name) {
	case "down", "arrowdown":
		return KeyDown, true
	case "up", "arrowup":
		return KeyUp, true
	case "enter", "return":
		return KeyEnter, true
	case "esc", "escape":
		return KeyEscape, true
	}
	return 0, false
}

// Controller drives the autocomplete of a single field. Its methods are the
// field's events and may be called from any goroutine; the controller
// serializes them. Lookups run on the debounce timer goroutine and their
// results are applied only if the field still wants them.
type Controller struct {
	name    string
	opts    Options
	finder  Finder
	surface Surface
	binding Binding
	log     *log.Logger

	debouncer *Debouncer
	ctx       context.Context
	cancel    context.CancelFunc

	// inMu orders Input calls end to end, so the last text stored is also
	// the last one scheduled.
	inMu sync.Mutex

	mu           sync.Mutex
	sel          *Selection
	query        string
	list         *CandidateList
	state        ViewState
	seq          uint64
	cancelLookup context.CancelFunc
	destroyed    bool
	version      uint64

	renderMu sync.Mutex
	rendered uint64
}

// NewController creates the controller for one field. finder may be shared
// between fields; surface and binding belong to this field only.
func NewController(name string, opts Options, finder Finder, surface Surface, binding Binding) *Controller {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		name:    name,
		opts:    opts,
		finder:  finder,
		surface: surface,
		binding: binding,
		log:     logger.ForField(name),
		ctx:     ctx,
		cancel:  cancel,
		sel:     NewSelection(opts.WrapNavigation),
	}
	c.debouncer = NewDebouncer(opts.DebounceDelay, opts.MinSearchLength, c.lookup, c.closeShort)
	return c
}

// Name returns the field name.
func (c *Controller) Name() string {
	return c.name
}

// SetLogger replaces the per-field logger.
func (c *Controller) SetLogger(l *log.Logger) {
	c.log = l
}

// Input handles new text in the field.
func (c *Controller) Input(raw string) {
	query := strings.TrimSpace(raw)

	c.inMu.Lock()
	defer c.inMu.Unlock()

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.query = query
	c.mu.Unlock()

	if c.binding != nil {
		c.binding.SetValue(raw)
	}
	c.debouncer.Schedule(query)
}

// closeShort runs when the query fell below the minimum length.
func (c *Controller) closeShort() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.detachLocked()
	c.sel.Close()
	v := c.viewLocked(ViewClosed)
	c.mu.Unlock()

	c.render(v)
}

// lookup is the debounce callback.
func (c *Controller) lookup(query string) {
	c.mu.Lock()
	if c.destroyed || query != c.query {
		c.mu.Unlock()
		return
	}
	c.detachLocked()
	seq := c.seq
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelLookup = cancel
	c.sel.Close()
	loading := c.viewLocked(ViewLoading)
	c.mu.Unlock()

	c.render(loading)
	c.log.Debug("Looking up", "query", query)

	list, err := c.finder.Fetch(ctx, query)

	c.mu.Lock()
	if c.destroyed || seq != c.seq || query != c.query {
		c.mu.Unlock()
		cancel()
		metrics.StaleResponses.Inc()
		c.log.Debug("Dropping stale result", "query", query)
		return
	}
	cancel()
	c.cancelLookup = nil

	var v View
	if err != nil {
		c.log.Error("Lookup failed", "query", query, "err", err)
		c.list = nil
		c.sel.Close()
		v = c.viewLocked(ViewError)
		v.Err = err
	} else {
		c.list = &list
		c.sel.Replace(list.Items)
		v = c.viewLocked(c.openState())
		c.log.Debug("Lookup done", "query", query, "count", list.Len(), "source", list.Source)
	}
	c.mu.Unlock()

	c.render(v)
}

// Key handles a navigation key. Keys are ignored while nothing is shown.
func (c *Controller) Key(k Key) {
	c.mu.Lock()
	if c.destroyed || c.state == ViewClosed {
		c.mu.Unlock()
		return
	}

	var (
		changed   bool
		committed bool
		cand      Candidate
	)
	switch k {
	case KeyDown:
		changed = c.sel.Next()
	case KeyUp:
		changed = c.sel.Prev()
	case KeyEnter:
		cand, committed = c.sel.Commit()
	case KeyEscape:
		c.abandonLocked()
		changed = true
	}

	if committed {
		c.commitLocked(cand)
	}
	if !changed && !committed {
		c.mu.Unlock()
		return
	}
	v := c.viewLocked(c.openState())
	c.mu.Unlock()

	c.finishCommit(committed, cand)
	c.render(v)
}

// Click commits the candidate rendered at index i.
func (c *Controller) Click(i int) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	cand, ok := c.sel.Pick(i)
	if !ok {
		c.mu.Unlock()
		return
	}
	c.commitLocked(cand)
	v := c.viewLocked(ViewClosed)
	c.mu.Unlock()

	c.finishCommit(true, cand)
	c.render(v)
}

// Focus reopens the last list without fetching, if there is one worth showing.
func (c *Controller) Focus() {
	c.mu.Lock()
	if c.destroyed || c.state != ViewClosed || c.list == nil ||
		utils.RuneLen(c.query) < c.opts.MinSearchLength || !c.sel.Reopen() {
		c.mu.Unlock()
		return
	}
	v := c.viewLocked(c.openState())
	c.mu.Unlock()

	c.render(v)
}

// Dismiss closes the list without committing, for clicks outside the field
// and its list.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	if c.destroyed || c.state == ViewClosed {
		c.mu.Unlock()
		return
	}
	c.abandonLocked()
	v := c.viewLocked(ViewClosed)
	c.mu.Unlock()

	c.render(v)
}

// Destroy cancels pending work. Late lookup results are dropped and nothing
// is rendered afterwards.
func (c *Controller) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.detachLocked()
	c.sel.Close()
	c.mu.Unlock()

	c.debouncer.Cancel()
	c.cancel()
}

// Snapshot returns the state the surface was last asked to show.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildLocked(c.state)
}

// Query returns the latest trimmed query.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// openState picks the state for an open or closed selection.
func (c *Controller) openState() ViewState {
	switch {
	case !c.sel.IsOpen():
		return ViewClosed
	case c.sel.Len() == 0:
		return ViewEmpty
	default:
		return ViewList
	}
}

// detachLocked forgets any in-flight lookup: its context is cancelled and its
// result will not match the sequence number anymore.
func (c *Controller) detachLocked() {
	c.seq++
	if c.cancelLookup != nil {
		c.cancelLookup()
		c.cancelLookup = nil
	}
}

// abandonLocked closes the list and drops pending and in-flight lookups for
// the current text.
func (c *Controller) abandonLocked() {
	c.detachLocked()
	c.debouncer.Cancel()
	c.sel.Close()
}

func (c *Controller) commitLocked(cand Candidate) {
	c.query = cand.Name
	c.detachLocked()
	c.debouncer.Cancel()
}

func (c *Controller) finishCommit(committed bool, cand Candidate) {
	if !committed {
		return
	}
	c.log.Debug("Committed", "value", cand.Name, "id", cand.ID)
	if c.binding != nil {
		c.binding.Commit(cand)
	}
}

// viewLocked records state as the current one and builds a versioned view.
func (c *Controller) viewLocked(state ViewState) View {
	c.state = state
	c.version++
	v := c.buildLocked(state)
	v.version = c.version
	return v
}

func (c *Controller) buildLocked(state ViewState) View {
	v := View{
		Field:       c.name,
		State:       state,
		Query:       c.query,
		Highlighted: -1,
	}
	if state == ViewList || state == ViewEmpty {
		v.Items = c.sel.Items()
		v.Highlighted = c.sel.Index()
		if c.list != nil {
			v.Source = c.list.Source
		}
	}
	return v
}

// render pushes v unless a newer view was already rendered.
func (c *Controller) render(v View) {
	if c.surface == nil {
		return
	}
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	if v.version <= c.rendered {
		return
	}
	c.rendered = v.version
	c.surface.Render(v)
}
