package generator

import (
	"strconv"
	"strings"
)

// SegmentKind distinguishes fixed text from editable stops.
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentVariable
)

// Segment is one piece of a template. For variables Text is the seed the
// user starts editing from.
type Segment struct {
	Kind SegmentKind
	Name string
	Text string
}

// Template is an ordered list of literal and variable segments handed to an
// interactive editing runtime.
type Template struct {
	Segments []Segment
}

// TemplateBuilder accumulates segments; adjacent literals are merged.
type TemplateBuilder struct {
	segments []Segment
}

// NewTemplate starts an empty template.
func NewTemplate() *TemplateBuilder { return &TemplateBuilder{} }

// Text appends a literal segment.
func (b *TemplateBuilder) Text(s string) *TemplateBuilder {
	if s == "" {
		return b
	}
	if n := len(b.segments); n > 0 && b.segments[n-1].Kind == SegmentLiteral {
		b.segments[n-1].Text += s
		return b
	}
	b.segments = append(b.segments, Segment{Kind: SegmentLiteral, Text: s})
	return b
}

// Variable appends an editable stop seeded with seed. Reusing a name mirrors
// the earlier stop.
func (b *TemplateBuilder) Variable(name, seed string) *TemplateBuilder {
	b.segments = append(b.segments, Segment{Kind: SegmentVariable, Name: name, Text: seed})
	return b
}

// Build returns the finished template.
func (b *TemplateBuilder) Build() *Template {
	out := make([]Segment, len(b.segments))
	copy(out, b.segments)
	return &Template{Segments: out}
}

// withNewline returns a copy whose literal line breaks are nl.
func (t *Template) withNewline(nl string) *Template {
	out := &Template{Segments: make([]Segment, len(t.Segments))}
	for i, s := range t.Segments {
		if s.Kind == SegmentLiteral {
			s.Text = withNewline(s.Text, nl)
		}
		out.Segments[i] = s
	}
	return out
}

// Text renders the template with every variable at its seed, which is what
// remains in the document if the session is cancelled.
func (t *Template) Text() string {
	var sb strings.Builder
	for _, s := range t.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Stops returns the distinct editable variables in visiting order.
func (t *Template) Stops() []Segment {
	var stops []Segment
	seen := map[string]bool{}
	for _, s := range t.Segments {
		if s.Kind != SegmentVariable || seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		stops = append(stops, s)
	}
	return stops
}

// Snippet renders the template in LSP snippet syntax: variables become
// numbered placeholders ${n:seed} and the final cursor position $0 follows
// the last segment.
func (t *Template) Snippet() string {
	var sb strings.Builder
	index := map[string]int{}
	for _, s := range t.Segments {
		if s.Kind == SegmentLiteral {
			sb.WriteString(escapeSnippet(s.Text))
			continue
		}
		n, ok := index[s.Name]
		if !ok {
			n = len(index) + 1
			index[s.Name] = n
		}
		sb.WriteString("${")
		sb.WriteString(strconv.Itoa(n))
		sb.WriteByte(':')
		sb.WriteString(escapeSnippet(s.Text))
		sb.WriteByte('}')
	}
	sb.WriteString("$0")
	return sb.String()
}

var snippetEscaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)

func escapeSnippet(s string) string { return snippetEscaper.Replace(s) }
