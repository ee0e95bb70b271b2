// Package a11y mirrors tree and dialog state into role/aria attributes and
// builds screen-reader style announcements for the terminal status line.
package a11y

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"docexplorer/internal/tree"
)

const (
	TreeLabel           = "Project files"
	DescriptionElement  = "file-description"
	DialogTitleElement  = "modal-title"
	attrRole            = "role"
	attrExpanded        = "aria-expanded"
	attrLevel           = "aria-level"
	attrDescribedBy     = "aria-describedby"
	attrTabIndex        = "tabindex"
	attrLabel           = "aria-label"
	attrHidden          = "aria-hidden"
	attrModal           = "aria-modal"
	attrLabelledBy      = "aria-labelledby"
	attrCurrentDocument = "data-file"
)

// Attrs is one element's attribute set.
type Attrs map[string]string

func (a Attrs) clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ModalState is the part of the dialog controller the layer checks against.
type ModalState interface {
	Current() (string, bool)
}

type Layer struct {
	model  *tree.Model
	nodes  map[string]Attrs
	root   Attrs
	dialog Attrs
}

// New seeds attributes for every node of model. Folders start collapsed.
func New(model *tree.Model) *Layer {
	l := &Layer{
		model: model,
		nodes: map[string]Attrs{},
		root:  Attrs{attrRole: "tree", attrLabel: TreeLabel},
		dialog: Attrs{
			attrRole:       "dialog",
			attrModal:      "true",
			attrHidden:     "true",
			attrLabelledBy: DialogTitleElement,
		},
	}
	var walk func(ids []string)
	walk = func(ids []string) {
		for _, id := range ids {
			n, _ := model.Node(id)
			a := Attrs{
				attrRole:     "treeitem",
				attrLevel:    strconv.Itoa(n.Depth + 1),
				attrTabIndex: "0",
			}
			if n.Kind == tree.KindFolder {
				a[attrExpanded] = strconv.FormatBool(model.IsExpanded(id))
			} else {
				a[attrDescribedBy] = DescriptionElement
			}
			l.nodes[id] = a
			walk(model.Children(id))
		}
	}
	walk(model.Roots())
	return l
}

// FolderToggled implements tree.Listener.
func (l *Layer) FolderToggled(id string, expanded bool) {
	a, ok := l.nodes[id]
	if !ok {
		return
	}
	a[attrExpanded] = strconv.FormatBool(expanded)
}

// ModalChanged implements modal.Listener.
func (l *Layer) ModalChanged(id string, open bool) {
	if open {
		l.dialog[attrHidden] = "false"
		l.dialog[attrDescribedBy] = DescriptionElement
		l.dialog[attrCurrentDocument] = id
		return
	}
	l.dialog[attrHidden] = "true"
	delete(l.dialog, attrDescribedBy)
	delete(l.dialog, attrCurrentDocument)
}

// Node returns a copy of the attributes of id.
func (l *Layer) Node(id string) (Attrs, bool) {
	a, ok := l.nodes[id]
	if !ok {
		return nil, false
	}
	return a.clone(), true
}

func (l *Layer) Root() Attrs   { return l.root.clone() }
func (l *Layer) Dialog() Attrs { return l.dialog.clone() }

// Check reports every place where the attributes disagree with the tree
// model or the dialog state.
func (l *Layer) Check(model *tree.Model, dialog ModalState) error {
	var errs []error
	ids := make([]string, 0, len(l.nodes))
	for id := range l.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) != model.Len() {
		errs = append(errs, fmt.Errorf("attributes for %d nodes, model has %d", len(ids), model.Len()))
	}
	for _, id := range ids {
		a := l.nodes[id]
		if !model.IsFolder(id) {
			if _, ok := a[attrExpanded]; ok {
				errs = append(errs, fmt.Errorf("%s: file carries %s", id, attrExpanded))
			}
			continue
		}
		want := strconv.FormatBool(model.IsExpanded(id))
		if got := a[attrExpanded]; got != want {
			errs = append(errs, fmt.Errorf("%s: %s=%q, state is %s", id, attrExpanded, got, want))
		}
	}
	if dialog != nil {
		id, open := dialog.Current()
		if got, want := l.dialog[attrHidden], strconv.FormatBool(!open); got != want {
			errs = append(errs, fmt.Errorf("dialog: %s=%q, want %q", attrHidden, got, want))
		}
		if got := l.dialog[attrCurrentDocument]; got != id {
			errs = append(errs, fmt.Errorf("dialog: shows %q, state is %q", got, id))
		}
	}
	return errors.Join(errs...)
}

// Announce describes id the way a screen reader would read the row.
func (l *Layer) Announce(id string) string {
	n, ok := l.model.Node(id)
	if !ok {
		return ""
	}
	a := l.nodes[id]
	level := a[attrLevel]
	if n.Kind != tree.KindFolder {
		return fmt.Sprintf("file %s, level %s", n.Name(), level)
	}
	state := "collapsed"
	if a[attrExpanded] == "true" {
		state = "expanded"
	}
	count := len(l.model.Children(id))
	noun := "items"
	if count == 1 {
		noun = "item"
	}
	return fmt.Sprintf("folder %s, %s, level %s, %d %s", n.Name(), state, level, count, noun)
}
