package tree

// Trigger identifies the input that produced an activation.
type Trigger int

const (
	TriggerPointer Trigger = iota
	TriggerKeyEnter
	TriggerKeySpace
	// TriggerOther is any key that is not an activation key; it is ignored.
	TriggerOther
)

func (t Trigger) String() string {
	switch t {
	case TriggerPointer:
		return "pointer"
	case TriggerKeyEnter:
		return "enter"
	case TriggerKeySpace:
		return "space"
	default:
		return "other"
	}
}

func (t Trigger) activates() bool {
	return t == TriggerPointer || t == TriggerKeyEnter || t == TriggerKeySpace
}

type Event struct {
	Target  string
	Trigger Trigger
}

type OutcomeKind int

const (
	OutcomeIgnored OutcomeKind = iota
	OutcomeExpanded
	OutcomeCollapsed
	OutcomeOpened
	// OutcomeOpenFailed means the file had no record; nothing changed.
	OutcomeOpenFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeExpanded:
		return "expanded"
	case OutcomeCollapsed:
		return "collapsed"
	case OutcomeOpened:
		return "opened"
	case OutcomeOpenFailed:
		return "open-failed"
	default:
		return "ignored"
	}
}

// Outcome reports what an event did. Consumed is true whenever a handler ran:
// callers must not forward a consumed event to an ancestor node.
type Outcome struct {
	Kind     OutcomeKind
	Target   string
	Consumed bool
	// Collapsed lists descendant folders reset by a collapse.
	Collapsed []string
}

// FileOpener receives activations on file nodes. The modal controller
// implements it.
type FileOpener interface {
	Open(id string) bool
}

// Listener is told about every folder whose expanded flag changed.
type Listener interface {
	FolderToggled(id string, expanded bool)
}

type handler func(c *Controller, id string) Outcome

// Controller is the only writer of a Model's expanded state.
type Controller struct {
	model     *Model
	opener    FileOpener
	listeners []Listener
	handlers  map[Kind]handler
}

func NewController(model *Model, opener FileOpener, listeners ...Listener) *Controller {
	return &Controller{
		model:     model,
		opener:    opener,
		listeners: listeners,
		handlers: map[Kind]handler{
			KindFolder: handleFolder,
			KindFile:   handleFile,
		},
	}
}

// Handle dispatches ev to the handler for its target's kind.
func (c *Controller) Handle(ev Event) Outcome {
	if !ev.Trigger.activates() {
		return Outcome{Kind: OutcomeIgnored, Target: ev.Target}
	}
	kind, ok := c.model.Kind(ev.Target)
	if !ok {
		return Outcome{Kind: OutcomeIgnored, Target: ev.Target}
	}
	h := c.handlers[kind]
	out := h(c, ev.Target)
	out.Target = ev.Target
	out.Consumed = true
	return out
}

// Activate is Handle with a pointer trigger.
func (c *Controller) Activate(id string) Outcome {
	return c.Handle(Event{Target: id, Trigger: TriggerPointer})
}

// Expand opens a collapsed folder; it does nothing for expanded folders or files.
func (c *Controller) Expand(id string) bool {
	if !c.model.IsFolder(id) || c.model.IsExpanded(id) {
		return false
	}
	c.Activate(id)
	return true
}

// Collapse closes an expanded folder (and its subtree).
func (c *Controller) Collapse(id string) bool {
	if !c.model.IsExpanded(id) {
		return false
	}
	c.Activate(id)
	return true
}

// Reveal expands the ancestors of id. It reports whether anything changed.
func (c *Controller) Reveal(id string) bool {
	if c.model.Visible(id) {
		return false
	}
	changed := c.model.Reveal(id)
	for _, a := range changed {
		c.notify(a, true)
	}
	return len(changed) > 0
}

func (c *Controller) notify(id string, expanded bool) {
	for _, l := range c.listeners {
		l.FolderToggled(id, expanded)
	}
}

func handleFolder(c *Controller, id string) Outcome {
	if !c.model.IsExpanded(id) {
		c.model.SetExpanded(id, true)
		c.notify(id, true)
		return Outcome{Kind: OutcomeExpanded}
	}
	c.model.SetExpanded(id, false)
	c.notify(id, false)
	reset := c.model.CollapseDescendants(id)
	for _, d := range reset {
		c.notify(d, false)
	}
	return Outcome{Kind: OutcomeCollapsed, Collapsed: reset}
}

func handleFile(c *Controller, id string) Outcome {
	if c.opener == nil || !c.opener.Open(id) {
		return Outcome{Kind: OutcomeOpenFailed}
	}
	return Outcome{Kind: OutcomeOpened}
}
