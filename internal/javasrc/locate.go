package javasrc

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/calumari/dtogen/internal/symbol"
)

// The locator answers cursor questions from the token stream rather than the
// skeleton, so locals and parameters inside method bodies are visible too.

var (
	identToken    = javaLexer.Symbols()["Ident"]
	ellipsisToken = javaLexer.Symbols()["Ellipsis"]
	literalTokens = map[lexer.TokenType]bool{
		javaLexer.Symbols()["String"]:    true,
		javaLexer.Symbols()["TextBlock"]: true,
		javaLexer.Symbols()["Char"]:      true,
	}
)

// keywords never start a type or name a variable. Primitive type names and
// var are deliberately absent.
var keywords = map[string]bool{
	"abstract": true, "assert": true, "break": true, "case": true, "catch": true,
	"class": true, "const": true, "continue": true, "default": true, "do": true,
	"else": true, "enum": true, "extends": true, "final": true, "finally": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "interface": true, "native": true, "new": true,
	"package": true, "private": true, "protected": true, "public": true,
	"return": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "try": true, "volatile": true,
	"while": true, "true": true, "false": true, "null": true, "record": true,
	"permits": true, "yield": true, "sealed": true,
}

// declaration is `Type name` found in the token stream. Method declarations
// are kept for their return type span only.
type declaration struct {
	Name      string
	NameStart int
	TypeStart int
	TypeEnd   int
	Type      symbol.TypeName
	Kind      symbol.VariableKind
	Method    bool

	// the name is visible in [NameStart, ScopeEnd]
	ScopeStart int
	ScopeEnd   int
}

func (d declaration) variable() symbol.Variable {
	return symbol.Variable{Name: d.Name, Type: d.Type, Kind: d.Kind, Offset: d.NameStart}
}

func (f *File) tok(i int) string {
	if i < 0 || i >= len(f.tokens) {
		return ""
	}
	return f.tokens[i].Value
}

func (f *File) isName(i int) bool {
	return i >= 0 && i < len(f.tokens) && f.tokens[i].Type == identToken && !keywords[f.tokens[i].Value]
}

func (f *File) start(i int) int { return f.tokens[i].Pos.Offset }

func (f *File) end(i int) int { return f.tokens[i].Pos.Offset + len(f.tokens[i].Value) }

// scanType matches Ident(.Ident)* <type args>? ([])* at i and returns the
// index just past it.
func (f *File) scanType(i int) (int, bool) {
	if !f.isName(i) {
		return 0, false
	}
	j := i + 1
	for f.tok(j) == "." && f.isName(j+1) {
		j += 2
	}
	if f.tok(j) == "<" {
		depth := 0
		for ; j < len(f.tokens); j++ {
			switch v := f.tok(j); v {
			case "<":
				depth++
			case ">":
				depth--
			case ".", ",", "?", "[", "]", "@":
			default:
				if f.tokens[j].Type != identToken {
					return 0, false
				}
			}
			if depth == 0 {
				j++
				break
			}
		}
		if depth != 0 {
			return 0, false
		}
	}
	for f.tok(j) == "[" && f.tok(j+1) == "]" {
		j += 2
	}
	return j, true
}

// typeText renders tokens [from, to) the way a declaration would print them.
func (f *File) typeText(from, to int) string {
	var sb strings.Builder
	for k := from; k < to; k++ {
		v := f.tok(k)
		prev := f.tok(k - 1)
		if k > from && f.tokens[k].Type == identToken && (f.tokens[k-1].Type == identToken || prev == "?") {
			sb.WriteByte(' ')
		}
		sb.WriteString(v)
		if v == "," {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func (f *File) scanDeclarations() []declaration {
	var decls []declaration
	for i := 0; i < len(f.tokens); i++ {
		if prev := f.tok(i - 1); prev == "." || prev == "@" {
			continue
		}
		typeEnd, ok := f.scanType(i)
		if !ok {
			continue
		}
		n := typeEnd
		varargs := n < len(f.tokens) && f.tokens[n].Type == ellipsisToken
		if varargs {
			n++
		}
		if !f.isName(n) {
			continue
		}
		follower := f.tok(n + 1)
		d := declaration{
			Name:      f.tok(n),
			NameStart: f.start(n),
			TypeStart: f.start(i),
			TypeEnd:   f.end(typeEnd - 1),
			Type:      f.declaredType(i, typeEnd),
		}
		if varargs {
			d.Type.Text += "..."
			d.Type.Canonical += "[]"
		}
		switch {
		case follower == "(":
			d.Method = true
		case f.tok(i-1) == "instanceof":
		case follower == "=" || follower == ";" || follower == "," || follower == ")" || follower == ":":
		default:
			continue
		}
		if !d.Method {
			if d.Type.Text == "var" && follower == "=" {
				d.Type = f.inferNew(n+2, d.Type)
			}
			d.Kind = f.kindOf(d.NameStart)
			d.ScopeStart, d.ScopeEnd = f.scopeOf(n, d.Kind)
		}
		decls = append(decls, d)
		if !d.Method && (follower == "=" || follower == ",") && f.tok(i-1) != "(" {
			decls = append(decls, f.moreDeclarators(n+1, i, typeEnd)...)
		}
		i = n
	}
	return decls
}

// moreDeclarators picks up `b` and `c` in `int a = 1, b, c = 2;` starting at
// the token after `a`.
func (f *File) moreDeclarators(k, typeStart, typeEnd int) []declaration {
	var out []declaration
	for k < len(f.tokens) {
		if f.tok(k) == "=" {
			k = f.skipExpression(k + 1)
		}
		if f.tok(k) != "," || !f.isName(k+1) {
			break
		}
		switch f.tok(k + 2) {
		case "=", ";", ",":
		default:
			return out
		}
		d := declaration{
			Name:      f.tok(k + 1),
			NameStart: f.start(k + 1),
			TypeStart: f.start(typeStart),
			TypeEnd:   f.end(typeEnd - 1),
			Type:      f.declaredType(typeStart, typeEnd),
		}
		d.Kind = f.kindOf(d.NameStart)
		d.ScopeStart, d.ScopeEnd = f.scopeOf(k+1, d.Kind)
		out = append(out, d)
		k += 2
	}
	return out
}

// skipExpression returns the index of the first ',' or ';' at nesting depth
// zero from k.
func (f *File) skipExpression(k int) int {
	depth := 0
	for ; k < len(f.tokens); k++ {
		switch f.tok(k) {
		case "(", "{", "[":
			depth++
		case ")", "}", "]":
			if depth == 0 {
				return k
			}
			depth--
		case ",", ";":
			if depth == 0 {
				return k
			}
		}
	}
	return k
}

func (f *File) declaredType(from, to int) symbol.TypeName {
	base := from
	for base+2 < to && f.tok(base+1) == "." && f.isName(base+2) {
		base += 2
	}
	var name strings.Builder
	for k := from; k <= base; k++ {
		name.WriteString(f.tok(k))
	}
	dims := 0
	for k := to - 1; k > base && f.tok(k) == "]"; k -= 2 {
		dims++
	}
	return symbol.TypeName{
		Text:      f.typeText(from, to),
		Canonical: f.canonical(name.String()) + strings.Repeat("[]", dims),
	}
}

// inferNew types `var x = new Foo<>(...)` as Foo.
func (f *File) inferNew(k int, fallback symbol.TypeName) symbol.TypeName {
	if f.tok(k) != "new" {
		return fallback
	}
	end, ok := f.scanType(k + 1)
	if !ok {
		return fallback
	}
	t := f.declaredType(k+1, end)
	if args := strings.IndexByte(t.Text, '<'); args >= 0 && strings.HasSuffix(t.Text, "<>") {
		t.Text = t.Text[:args]
	}
	return t
}

func (f *File) kindOf(nameStart int) symbol.VariableKind {
	switch {
	case f.fieldNames[nameStart]:
		return symbol.FieldVariable
	case f.paramNames[nameStart]:
		return symbol.ParameterVariable
	}
	return symbol.LocalVariable
}

// scopeOf approximates where the name declared at token n is visible: fields
// everywhere, names inside parentheses in the block that follows them, and
// everything else until its enclosing block closes.
func (f *File) scopeOf(n int, kind symbol.VariableKind) (int, int) {
	if kind == symbol.FieldVariable {
		return 0, len(f.Src)
	}
	start := f.start(n)
	if p := f.enclosing(n, "(", ")"); p >= 0 {
		closeParen := f.matching(p, "(", ")")
		for k := closeParen + 1; k < len(f.tokens); k++ {
			switch f.tok(k) {
			case "{":
				return start, f.end(f.matching(k, "{", "}"))
			case ";", "}":
				return start, f.end(k)
			}
		}
	}
	if b := f.enclosing(n, "{", "}"); b >= 0 {
		return start, f.end(f.matching(b, "{", "}"))
	}
	return start, len(f.Src)
}

// enclosing returns the index of the unmatched open token before i, or -1.
// Paren lookups stop at block boundaries.
func (f *File) enclosing(i int, open, close string) int {
	depth := 0
	for k := i - 1; k >= 0; k-- {
		switch v := f.tok(k); {
		case v == close:
			depth++
		case v == open:
			if depth == 0 {
				return k
			}
			depth--
		case open == "(" && depth == 0 && (v == "{" || v == "}"):
			return -1
		}
	}
	return -1
}

// matching returns the index of the token closing the one at i.
func (f *File) matching(i int, open, close string) int {
	depth := 0
	for k := i; k < len(f.tokens); k++ {
		switch f.tok(k) {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return len(f.tokens) - 1
}

// tokenAt returns the token under offset. A caret right after an identifier
// counts as being on it.
func (f *File) tokenAt(offset int) int {
	idx := sort.Search(len(f.tokens), func(i int) bool { return f.end(i) > offset })
	inside := idx < len(f.tokens) && f.start(idx) <= offset
	if idx > 0 && f.end(idx-1) == offset && f.tokens[idx-1].Type == identToken {
		if !inside || f.tokens[idx].Type != identToken {
			return idx - 1
		}
	}
	if inside {
		return idx
	}
	return -1
}

// TypeAnnotationAt returns the declared type when offset is on the type of a
// declaration, including a method's return type.
func (f *File) TypeAnnotationAt(offset int) (symbol.TypeName, bool) {
	for _, d := range f.decls {
		if offset >= d.TypeStart && offset <= d.TypeEnd {
			return d.Type, true
		}
	}
	return symbol.TypeName{}, false
}

// ClassReferenceAt returns the (possibly dotted) identifier at offset when it
// names a known class.
func (f *File) ClassReferenceAt(offset int) (string, bool) {
	i := f.tokenAt(offset)
	if i < 0 || f.tokens[i].Type != identToken || keywords[f.tok(i)] {
		return "", false
	}
	first := i
	for first >= 2 && f.tok(first-1) == "." && f.isName(first-2) {
		first -= 2
	}
	var name strings.Builder
	for k := first; k <= i; k++ {
		name.WriteString(f.tok(k))
	}
	if _, ok := f.ResolveType(name.String()); !ok {
		return "", false
	}
	return name.String(), true
}

// DeclarationNameAt returns the qualified name of the class whose declared
// name is under offset.
func (f *File) DeclarationNameAt(offset int) (string, bool) {
	i := f.tokenAt(offset)
	if i < 0 {
		return "", false
	}
	for _, c := range f.classes {
		if c.NameOffset == f.start(i) {
			return c.Qualified, true
		}
	}
	return "", false
}

// VariableAt returns the variable whose declaration, type through name,
// covers offset.
func (f *File) VariableAt(offset int) (symbol.Variable, bool) {
	for _, d := range f.decls {
		if d.Method {
			continue
		}
		if offset >= d.TypeStart && offset <= d.NameStart+len(d.Name) {
			return d.variable(), true
		}
	}
	return symbol.Variable{}, false
}

// ResolveVariableOrField resolves the declaration under offset, or the
// variable a plain identifier at offset refers to.
func (f *File) ResolveVariableOrField(offset int) (symbol.Variable, bool) {
	if v, ok := f.VariableAt(offset); ok {
		return v, true
	}
	i := f.tokenAt(offset)
	if !f.isName(i) || f.tok(i+1) == "(" {
		return symbol.Variable{}, false
	}
	if prev := f.tok(i - 1); prev == "." && f.tok(i-2) != "this" {
		return symbol.Variable{}, false
	}
	return f.VariableNamed(f.tok(i), offset)
}

// VariableNamed finds the declaration of name visible at offset, preferring
// the innermost one. A leading "this." selects fields. Declarations out of
// scope at offset are ignored.
func (f *File) VariableNamed(name string, offset int) (symbol.Variable, bool) {
	fieldsOnly := false
	if rest, ok := strings.CutPrefix(name, "this."); ok {
		name, fieldsOnly = rest, true
	}
	var best *declaration
	for k := range f.decls {
		d := &f.decls[k]
		if d.Method || d.Name != name || (fieldsOnly && d.Kind != symbol.FieldVariable) {
			continue
		}
		if offset < d.ScopeStart || offset > d.ScopeEnd {
			continue
		}
		if best == nil || d.ScopeStart >= best.ScopeStart {
			best = d
		}
	}
	if best == nil {
		return symbol.Variable{}, false
	}
	return best.variable(), true
}

// QualifierAt recognizes `qualifier.partial|` where qualifier is a dotted
// identifier chain written without whitespace.
func (f *File) QualifierAt(offset int) (symbol.Qualifier, bool) {
	if offset < 0 || offset > len(f.Src) || f.inLiteral(offset) {
		return symbol.Qualifier{}, false
	}
	partialStart := offset
	for partialStart > 0 {
		r, size := utf8.DecodeLastRuneInString(f.Src[:partialStart])
		if !isIdentRune(r) {
			break
		}
		partialStart -= size
	}
	end := offset
	for end < len(f.Src) {
		r, size := utf8.DecodeRuneInString(f.Src[end:])
		if !isIdentRune(r) {
			break
		}
		end += size
	}
	if partialStart == 0 || f.Src[partialStart-1] != '.' {
		return symbol.Qualifier{}, false
	}
	dot := partialStart - 1
	start := dot
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(f.Src[:start])
		if !isIdentRune(r) && r != '.' {
			break
		}
		start -= size
	}
	text := f.Src[start:dot]
	if text == "" {
		return symbol.Qualifier{}, false
	}
	for part := range strings.SplitSeq(text, ".") {
		r, _ := utf8.DecodeRuneInString(part)
		if part == "" || unicode.IsDigit(r) {
			return symbol.Qualifier{}, false
		}
	}
	return symbol.Qualifier{Text: text, Start: start, TriggerStart: partialStart, TriggerEnd: end}, true
}

func (f *File) inLiteral(offset int) bool {
	for _, t := range f.tokens {
		if t.Pos.Offset >= offset {
			return false
		}
		if literalTokens[t.Type] && offset < t.Pos.Offset+len(t.Value) {
			return true
		}
	}
	return false
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
