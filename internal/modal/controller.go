// Package modal holds the single-slot "which file is shown" state and turns
// it into a view model for whatever renders the dialog.
package modal

import (
	"io"

	"github.com/charmbracelet/log"

	"docexplorer/internal/catalog"
)

// NoDependenciesText is shown in place of an empty dependency list.
const NoDependenciesText = "No external dependencies"

type DismissTrigger int

const (
	DismissCloseControl DismissTrigger = iota
	DismissOverlay
	DismissEscape
)

func (t DismissTrigger) String() string {
	switch t {
	case DismissCloseControl:
		return "close-control"
	case DismissOverlay:
		return "overlay"
	default:
		return "escape"
	}
}

// Entry is one line of the dependency list.
type Entry struct {
	Label       string `json:"label"`
	Interactive bool   `json:"interactive"`
	Target      string `json:"target,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// View is everything needed to render the open dialog.
type View struct {
	ID          string  `json:"id"`
	Icon        string  `json:"icon"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Usage       string  `json:"usage"`
	Entries     []Entry `json:"dependencies"`
}

// Listener is told about every change of the shown file.
type Listener interface {
	ModalChanged(id string, open bool)
}

type FocusKind int

const (
	FocusDialog FocusKind = iota
	FocusClose
	FocusDependency
)

// Focus names the element that receives keyboard activation. Entry indexes
// View.Entries and is only meaningful for FocusDependency.
type Focus struct {
	Kind  FocusKind
	Entry int
}

type Controller struct {
	store     *catalog.Store
	logger    *log.Logger
	listeners []Listener

	current string
	focus   Focus
}

func New(store *catalog.Store, logger *log.Logger, listeners ...Listener) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{store: store, logger: logger, listeners: listeners}
}

// Open shows id. An id without a record is logged and leaves the state alone.
func (c *Controller) Open(id string) bool {
	if _, ok := c.store.Lookup(id); !ok {
		c.logger.Warn("no description found", "path", id)
		return false
	}
	c.current = id
	c.focus = Focus{Kind: FocusDialog}
	c.notify(id, true)
	return true
}

// Close hides the dialog. Closing a closed dialog does nothing.
func (c *Controller) Close() {
	if c.current == "" {
		return
	}
	prev := c.current
	c.current = ""
	c.focus = Focus{Kind: FocusDialog}
	c.notify(prev, false)
}

// Dismiss closes the dialog; every trigger ends in the same state.
func (c *Controller) Dismiss(trigger DismissTrigger) {
	c.logger.Debug("modal dismissed", "trigger", trigger)
	c.Close()
}

func (c *Controller) Current() (string, bool) {
	return c.current, c.current != ""
}

func (c *Controller) IsOpen() bool { return c.current != "" }

// View builds the dialog contents for the current file.
func (c *Controller) View() (View, bool) {
	e, ok := c.store.Lookup(c.current)
	if !ok {
		return View{}, false
	}
	v := View{
		ID:          e.ID,
		Icon:        e.Record.Icon,
		Title:       catalog.Base(e.ID),
		Description: e.Record.Description,
		Usage:       e.Record.Usage,
	}
	if len(e.Deps) == 0 {
		v.Entries = []Entry{{Label: NoDependenciesText, Placeholder: true}}
		return v, true
	}
	v.Entries = make([]Entry, 0, len(e.Deps))
	for _, d := range e.Deps {
		v.Entries = append(v.Entries, Entry{
			Label:       d.ID,
			Interactive: d.Resolved(),
			Target:      d.ID,
		})
	}
	return v, true
}

// ActivateDependency follows the entry at index when it is interactive.
func (c *Controller) ActivateDependency(index int) bool {
	v, ok := c.View()
	if !ok || index < 0 || index >= len(v.Entries) {
		return false
	}
	en := v.Entries[index]
	if !en.Interactive {
		return false
	}
	return c.Open(en.Target)
}

func (c *Controller) Focused() Focus { return c.focus }

// ring is the tab order: the close control, then each interactive entry.
func (c *Controller) ring() []Focus {
	v, ok := c.View()
	if !ok {
		return nil
	}
	out := []Focus{{Kind: FocusClose}}
	for i, en := range v.Entries {
		if en.Interactive {
			out = append(out, Focus{Kind: FocusDependency, Entry: i})
		}
	}
	return out
}

func (c *Controller) FocusNext() { c.moveFocus(1) }

func (c *Controller) FocusPrev() { c.moveFocus(-1) }

func (c *Controller) moveFocus(delta int) {
	ring := c.ring()
	if len(ring) == 0 {
		return
	}
	pos := -1
	for i, f := range ring {
		if f == c.focus {
			pos = i
			break
		}
	}
	switch {
	case pos < 0 && delta > 0:
		pos = 0
	case pos < 0:
		pos = len(ring) - 1
	default:
		pos = (pos + delta + len(ring)) % len(ring)
	}
	c.focus = ring[pos]
}

// ActivateFocused presses whatever has focus. It reports whether anything
// happened.
func (c *Controller) ActivateFocused() bool {
	if !c.IsOpen() {
		return false
	}
	switch c.focus.Kind {
	case FocusClose:
		c.Dismiss(DismissCloseControl)
		return true
	case FocusDependency:
		return c.ActivateDependency(c.focus.Entry)
	default:
		return false
	}
}

func (c *Controller) notify(id string, open bool) {
	for _, l := range c.listeners {
		l.ModalChanged(id, open)
	}
}
