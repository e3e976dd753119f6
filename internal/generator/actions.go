package generator

import (
	"fmt"
	"slices"
)

// Action is a generation entry point exposed to hosts.
type Action interface {
	// ID is the stable identifier, also used as the completion label.
	ID() string
	// Title is the human readable name shown in menus.
	Title() string
	// Applicable is a cheap, side-effect free check.
	Applicable(inv Invocation) bool
	// Plan computes the edit without touching the document. A nil edit with
	// a nil error means there is nothing to generate.
	Plan(inv Invocation) (*Edit, error)
}

const (
	AccessorChainID = "allGetters"
	BuilderChainID  = "builderChain"
)

type accessorChain struct{ g *Generator }

func (a accessorChain) ID() string    { return AccessorChainID }
func (a accessorChain) Title() string { return "Generate all getters" }

func (a accessorChain) target(inv Invocation) (string, []AccessorCandidate, bool) {
	if inv.Source == nil {
		return "", nil, false
	}
	switch inv.Trigger.Kind {
	case TriggerCompletion:
		t, ok := qualifierVariable(inv.Source, inv.Trigger)
		if !ok {
			return "", nil, false
		}
		return inv.Trigger.Qualifier, slices.Collect(DetectAccessors(t)), true
	case TriggerCommand:
		v, ok := inv.Source.ResolveVariableOrField(inv.Trigger.Offset)
		if !ok {
			return "", nil, false
		}
		t, ok := resolveTypeName(inv.Source, v.Type)
		if !ok {
			return "", nil, false
		}
		return v.Name, slices.Collect(DetectAccessors(t)), true
	}
	return "", nil, false
}

func (a accessorChain) Applicable(inv Invocation) bool {
	_, accessors, ok := a.target(inv)
	return ok && len(accessors) > 0
}

func (a accessorChain) Plan(inv Invocation) (*Edit, error) {
	variable, accessors, ok := a.target(inv)
	if !ok {
		return nil, fmt.Errorf("%s: %w", a.ID(), ErrNotApplicable)
	}
	if len(accessors) == 0 {
		log.Debugf("%s: no accessors on %q", a.ID(), variable)
		return nil, nil
	}
	if inv.Trigger.Kind == TriggerCommand {
		r := commandSplice(inv.Document, inv.Trigger.Offset)
		return &Edit{Range: r, Text: withNewline("\n"+r.Indent+GetterChain(variable, accessors, r.Indent), r.Newline)}, nil
	}
	r, err := qualifierSplice(inv.Document, inv.Trigger)
	if err != nil {
		return nil, err
	}
	return &Edit{Range: r, Text: withNewline(GetterChain(variable, accessors, r.Indent), r.Newline)}, nil
}

type builderChain struct{ g *Generator }

func (b builderChain) ID() string    { return BuilderChainID }
func (b builderChain) Title() string { return "Generate builder chain" }

func (b builderChain) target(inv Invocation) (*BuilderSpec, bool) {
	if inv.Source == nil {
		return nil, false
	}
	switch inv.Trigger.Kind {
	case TriggerCompletion:
		t, ok := qualifierClass(inv.Source, inv.Trigger)
		if !ok {
			t, ok = qualifierVariable(inv.Source, inv.Trigger)
		}
		if !ok {
			return nil, false
		}
		return detectBuilder(inv.Source, t, b.g.cfg.FactoryMethod)
	case TriggerCommand:
		t, ok := resolveCommandTarget(inv.Source, inv.Trigger.Offset)
		if !ok {
			return nil, false
		}
		return detectBuilder(inv.Source, t, b.g.cfg.FactoryMethod)
	}
	return nil, false
}

func (b builderChain) Applicable(inv Invocation) bool {
	spec, ok := b.target(inv)
	return ok && len(spec.Setters) > 0
}

func (b builderChain) Plan(inv Invocation) (*Edit, error) {
	spec, ok := b.target(inv)
	if !ok {
		return nil, fmt.Errorf("%s: %w", b.ID(), ErrNotApplicable)
	}
	if len(spec.Setters) == 0 {
		log.Debugf("%s: no setters on %q", b.ID(), spec.Builder.Name)
		return nil, nil
	}
	if inv.Trigger.Kind == TriggerCommand {
		r := commandSplice(inv.Document, inv.Trigger.Offset)
		text := "\n" + r.Indent + b.g.BuilderChain(spec.Target.Name, spec, r.Indent)
		return &Edit{Range: r, Text: withNewline(text, r.Newline)}, nil
	}
	r, err := qualifierSplice(inv.Document, inv.Trigger)
	if err != nil {
		return nil, err
	}
	tmpl := b.g.BuilderTemplate(inv.Trigger.Qualifier, spec, r.Indent, isStandalone(inv.Document, r.Start)).withNewline(r.Newline)
	return &Edit{Range: r, Text: tmpl.Text(), Template: tmpl}, nil
}
