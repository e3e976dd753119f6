package generator

import (
	"errors"

	"github.com/tliron/commonlog"

	"github.com/calumari/dtogen/internal/document"
	"github.com/calumari/dtogen/internal/symbol"
)

// This file houses the value types passed between detection, generation and
// splicing. All of them live for a single invocation.

var log = commonlog.GetLogger("dtogen.generator")

var (
	// ErrNotApplicable means the trigger does not resolve to a usable type.
	ErrNotApplicable = errors.New("not applicable")
	// ErrInvalidSplice means the computed replacement range contradicts the
	// document. It indicates a bug in trigger/document coordination.
	ErrInvalidSplice = errors.New("invalid splice range")
)

const (
	defaultContinuationIndent = "    "
	defaultFactoryMethod      = "builder"
	defaultBuildMethod        = "build"
)

// Config holds generation settings.
type Config struct {
	ContinuationIndent string // indent of each fluent call below the factory call
	FactoryMethod      string // static factory returning the builder
	BuildMethod        string // terminal builder call
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		ContinuationIndent: defaultContinuationIndent,
		FactoryMethod:      defaultFactoryMethod,
		BuildMethod:        defaultBuildMethod,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ContinuationIndent == "" {
		c.ContinuationIndent = d.ContinuationIndent
	}
	if c.FactoryMethod == "" {
		c.FactoryMethod = d.FactoryMethod
	}
	if c.BuildMethod == "" {
		c.BuildMethod = d.BuildMethod
	}
	return c
}

// AccessorCandidate is a method classified as a getter.
type AccessorCandidate struct {
	Method   symbol.MethodSig
	Property string
}

// BuilderSpec describes a type that can be built fluently.
type BuilderSpec struct {
	Target  *symbol.TypeRef
	Factory symbol.MethodSig
	Builder *symbol.TypeRef
	Setters []symbol.MethodSig
}

// SpliceRange is the half-open document range [Start, End) to replace, the
// indentation in effect at Start and the line terminator of that line.
type SpliceRange struct {
	Start   int
	End     int
	Indent  string
	Newline string
}

// TriggerKind tells how a generation was requested.
type TriggerKind int

const (
	// TriggerCompletion is an accepted completion item typed after a
	// member-access dot, e.g. `order.allGe|`.
	TriggerCompletion TriggerKind = iota
	// TriggerCommand is an explicit command run with the caret at Offset.
	TriggerCommand
)

func (k TriggerKind) String() string {
	if k == TriggerCommand {
		return "command"
	}
	return "completion"
}

// Trigger is the cursor context of one invocation.
type Trigger struct {
	Kind TriggerKind
	// Offset is the caret for commands; for completions it is the start of
	// the member name, just after the dot.
	Offset int
	// Tail is the end of the typed member name (completion only).
	Tail int
	// Qualifier is the expression text left of the dot (completion only).
	Qualifier string
}

// CompletionTrigger builds a completion trigger from a located qualifier.
func CompletionTrigger(q symbol.Qualifier) Trigger {
	return Trigger{Kind: TriggerCompletion, Offset: q.TriggerStart, Tail: q.TriggerEnd, Qualifier: q.Text}
}

// CommandTrigger builds a command trigger at the caret.
func CommandTrigger(offset int) Trigger {
	return Trigger{Kind: TriggerCommand, Offset: offset}
}

// Edit is a planned document change. Text replaces Range directly; when
// Template is set the range is deleted and the template is handed to the
// interactive runtime at Range.Start (Text then holds the seeded rendering).
type Edit struct {
	Range    SpliceRange
	Text     string
	Template *Template
}

// Document is the host buffer as seen by the engine.
type Document interface {
	Len() int
	LineNumber(offset int) int
	LineStartOffset(line int) int
	LineEndOffset(line int) int
	TextBetween(start, end int) string
	WriteAction(fn func(document.Editor) error) error
}

// Invocation bundles everything one trigger needs.
type Invocation struct {
	Source   symbol.Source
	Document Document
	Trigger  Trigger
}
