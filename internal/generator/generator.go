// Package generator detects accessors and builders on class-like types and
// turns them into getter or builder-chain code spliced into a document.
package generator

import (
	"github.com/calumari/dtogen/internal/document"
)

// Generator owns the configured actions.
type Generator struct {
	cfg     Config
	actions []Action
}

// New returns a generator; zero fields in cfg take their defaults.
func New(cfg Config) *Generator {
	g := &Generator{cfg: cfg.withDefaults()}
	g.actions = []Action{accessorChain{g: g}, builderChain{g: g}}
	return g
}

// Config returns the effective settings.
func (g *Generator) Config() Config { return g.cfg }

// Actions returns the entry points in presentation order.
func (g *Generator) Actions() []Action { return g.actions }

// Action looks an entry point up by ID.
func (g *Generator) Action(id string) (Action, bool) {
	for _, a := range g.actions {
		if a.ID() == id {
			return a, true
		}
	}
	return nil, false
}

// Applicable returns the actions that apply to inv.
func (g *Generator) Applicable(inv Invocation) []Action {
	var out []Action
	for _, a := range g.actions {
		if a.Applicable(inv) {
			out = append(out, a)
		}
	}
	return out
}

// Apply plans a and commits the result as one write action. Plain edits
// replace their range; template edits delete the range and return the
// template for the interactive runtime to insert at Range.Start. A nil edit
// means nothing was generated and the document is unchanged.
func (g *Generator) Apply(a Action, inv Invocation) (*Edit, error) {
	edit, err := a.Plan(inv)
	if err != nil || edit == nil {
		return nil, err
	}
	err = inv.Document.WriteAction(func(ed document.Editor) error {
		if edit.Template != nil {
			return ed.Delete(edit.Range.Start, edit.Range.End)
		}
		return ed.Replace(edit.Range.Start, edit.Range.End, edit.Text)
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("%s applied at [%d,%d)", a.ID(), edit.Range.Start, edit.Range.End)
	return edit, nil
}

// Commit writes a template edit with every stop at its seed, for hosts
// without an interactive runtime.
func (g *Generator) Commit(a Action, inv Invocation) (*Edit, error) {
	edit, err := a.Plan(inv)
	if err != nil || edit == nil {
		return nil, err
	}
	err = inv.Document.WriteAction(func(ed document.Editor) error {
		return ed.Replace(edit.Range.Start, edit.Range.End, edit.Text)
	})
	if err != nil {
		return nil, err
	}
	return edit, nil
}
