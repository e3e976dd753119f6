// Package javasrc builds the symbol model for Java-like source files: a
// declaration skeleton parsed with participle, plus a token-level locator
// for cursor queries inside method bodies.
package javasrc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/tliron/commonlog"

	"github.com/calumari/dtogen/internal/symbol"
)

var log = commonlog.GetLogger("dtogen.javasrc")

// File is one parsed source file. It implements symbol.Source; types are
// resolved through the Index the file belongs to.
type File struct {
	Name    string
	Src     string
	Package string

	imports map[string]string // simple name -> qualified name
	classes []*classInfo
	tokens  []lexer.Token
	decls   []declaration
	scope   *Index

	// name offsets of fields and parameters known from the skeleton
	fieldNames map[int]bool
	paramNames map[int]bool
}

// classInfo is a declared class, interface, enum or record.
type classInfo struct {
	Name        string
	Qualified   string
	Kind        string
	NameOffset  int
	Annotations []string
	Supers      []symbol.TypeName // extends, then implements
	Fields      []fieldInfo
	Methods     []symbol.MethodSig
	file        *File
}

type fieldInfo struct {
	Name        string
	Type        symbol.TypeName
	Static      bool
	Final       bool
	Initialized bool
	Annotations []string
}

// Parse parses src and returns a File resolving types against itself only.
// Use NewIndex to resolve across several files.
func Parse(filename, src string) (*File, error) {
	unit, err := javaParser.ParseString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	tokens, err := tokenize(filename, src)
	if err != nil {
		return nil, fmt.Errorf("tokenize %s: %w", filename, err)
	}
	f := &File{
		Name:       filename,
		Src:        src,
		imports:    map[string]string{},
		tokens:     tokens,
		fieldNames: map[int]bool{},
		paramNames: map[int]bool{},
	}
	if unit.Package != nil {
		f.Package = strings.Join(unit.Package.Name, ".")
	}
	for _, imp := range unit.Imports {
		if imp.Static || len(imp.Path) == 0 || imp.Path[len(imp.Path)-1] == "*" {
			continue
		}
		f.imports[imp.Path[len(imp.Path)-1]] = strings.Join(imp.Path, ".")
	}
	// Names first so that member types can refer to classes declared later.
	for _, td := range unit.Types {
		f.declareNames(td.Body, nil)
	}
	for _, td := range unit.Types {
		f.collect(td.Modifiers, td.Body)
	}
	for _, c := range f.classes {
		synthesizeLombok(c)
	}
	f.decls = f.scanDeclarations()
	f.scope = newIndex(f)
	log.Debugf("parsed %s: %d types, %d declarations", filename, len(f.classes), len(f.decls))
	return f, nil
}

func tokenize(filename, src string) ([]lexer.Token, error) {
	lex, err := javaLexer.Lex(filename, strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}
	symbols := javaLexer.Symbols()
	skip := map[lexer.TokenType]bool{symbols["Whitespace"]: true, symbols["Comment"]: true}
	tokens := make([]lexer.Token, 0, len(all))
	for _, t := range all {
		if t.EOF() || skip[t.Type] {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// declareNames registers every class name with its qualified name.
func (f *File) declareNames(body *typeBody, outer *classInfo) {
	c := &classInfo{file: f}
	var members []*member
	switch {
	case body.Class != nil:
		c.Kind = body.Class.Kind
		if strings.HasPrefix(c.Kind, "@") {
			c.Kind = "@interface"
		}
		c.Name = body.Class.Name.Name
		c.NameOffset = body.Class.Name.Pos.Offset
		members = body.Class.Members
	case body.Enum != nil:
		c.Kind = "enum"
		c.Name = body.Enum.Name.Name
		c.NameOffset = body.Enum.Name.Pos.Offset
		members = body.Enum.Members
	default:
		return
	}
	switch {
	case outer != nil:
		c.Qualified = outer.Qualified + "." + c.Name
	case f.Package != "":
		c.Qualified = f.Package + "." + c.Name
	default:
		c.Qualified = c.Name
	}
	f.classes = append(f.classes, c)
	for _, m := range members {
		if m.Decl.Type != nil {
			f.declareNames(m.Decl.Type, c)
		}
	}
}

func (f *File) classAt(nameOffset int) *classInfo {
	for _, c := range f.classes {
		if c.NameOffset == nameOffset {
			return c
		}
	}
	return nil
}

// collect fills in the members of the class declared by body.
func (f *File) collect(mods []*modifier, body *typeBody) {
	var (
		c       *classInfo
		members []*member
	)
	switch {
	case body.Class != nil:
		c = f.classAt(body.Class.Name.Pos.Offset)
		for _, t := range slices.Concat(body.Class.Extends, body.Class.Implements) {
			c.Supers = append(c.Supers, f.typeName(t, outerScope(c.Qualified)))
		}
		if body.Class.Header != nil {
			f.recordComponents(c, body.Class.Header)
		}
		members = body.Class.Members
	case body.Enum != nil:
		c = f.classAt(body.Enum.Name.Pos.Offset)
		for _, t := range body.Enum.Implements {
			c.Supers = append(c.Supers, f.typeName(t, outerScope(c.Qualified)))
		}
		members = body.Enum.Members
	}
	if c == nil {
		return
	}
	c.Annotations = annotationNames(mods)
	iface := c.Kind == "interface" || c.Kind == "@interface"
	for _, m := range members {
		d := m.Decl
		switch {
		case d.Type != nil:
			f.collect(m.Modifiers, d.Type)
		case d.Constructor != nil:
			for _, p := range d.Constructor.Params.Params {
				f.paramNames[p.Name.Pos.Offset] = true
			}
		case d.Typed != nil && d.Typed.Rest.Method != nil:
			c.Methods = append(c.Methods, f.method(c, m.Modifiers, d.Typed, iface))
		case d.Typed != nil && d.Typed.Rest.Field != nil:
			c.Fields = append(c.Fields, f.fields(c, m.Modifiers, d.Typed)...)
		}
	}
}

// recordComponents adds the fields and public accessors a record header
// implies.
func (f *File) recordComponents(c *classInfo, header *paramList) {
	for _, p := range header.Params {
		t := f.typeName(p.Type, c.Qualified)
		f.fieldNames[p.Name.Pos.Offset] = true
		c.Fields = append(c.Fields, fieldInfo{Name: p.Name.Name, Type: t, Final: true})
		c.Methods = append(c.Methods, symbol.MethodSig{
			Name:          p.Name.Name,
			Visibility:    symbol.Public,
			Return:        t,
			DeclaringType: c.Name,
		})
	}
}

func (f *File) method(c *classInfo, mods []*modifier, tm *typedMember, iface bool) symbol.MethodSig {
	sig := symbol.MethodSig{
		Name:          tm.Name.Name,
		Visibility:    visibility(mods, iface),
		Static:        hasKeyword(mods, "static"),
		Return:        f.typeName(tm.Type, c.Qualified),
		DeclaringType: c.Name,
	}
	for _, p := range tm.Rest.Method.Params.Params {
		t := f.typeName(p.Type, c.Qualified)
		if p.Varargs {
			t.Text += "..."
			t.Canonical += "[]"
		}
		f.paramNames[p.Name.Pos.Offset] = true
		sig.Params = append(sig.Params, symbol.Param{Name: p.Name.Name, Type: t})
	}
	return sig
}

func (f *File) fields(c *classInfo, mods []*modifier, tm *typedMember) []fieldInfo {
	rest := tm.Rest.Field
	base := fieldInfo{
		Type:        f.typeName(tm.Type, c.Qualified),
		Static:      hasKeyword(mods, "static"),
		Final:       hasKeyword(mods, "final"),
		Annotations: annotationNames(mods),
	}
	first := base
	first.Name = tm.Name.Name
	first.Initialized = rest.Init != nil
	f.fieldNames[tm.Name.Pos.Offset] = true
	out := []fieldInfo{first}
	for _, d := range rest.More {
		f.fieldNames[d.Name.Pos.Offset] = true
		next := base
		next.Name = d.Name.Name
		next.Initialized = d.Init != nil
		out = append(out, next)
	}
	return out
}

func visibility(mods []*modifier, iface bool) symbol.Visibility {
	switch {
	case hasKeyword(mods, "public"):
		return symbol.Public
	case hasKeyword(mods, "protected"):
		return symbol.Protected
	case hasKeyword(mods, "private"):
		return symbol.Private
	case iface:
		return symbol.Public
	}
	return symbol.PackagePrivate
}

func hasKeyword(mods []*modifier, kw string) bool {
	for _, m := range mods {
		if m.Keyword == kw {
			return true
		}
	}
	return false
}

// annotationNames returns simple annotation names: @lombok.Getter -> Getter.
func annotationNames(mods []*modifier) []string {
	var names []string
	for _, m := range mods {
		if m.Annotation != nil && len(m.Annotation.Name) > 0 {
			names = append(names, m.Annotation.Name[len(m.Annotation.Name)-1])
		}
	}
	return names
}

// typeName renders a parsed type and resolves its canonical name as seen
// from inside the class named scope.
func (f *File) typeName(t *typeRef, scope string) symbol.TypeName {
	if t == nil {
		return symbol.TypeName{}
	}
	var sb strings.Builder
	writeTypeRef(&sb, t)
	dims := strings.Repeat("[]", len(t.Dims))
	return symbol.TypeName{Text: sb.String(), Canonical: f.canonicalIn(strings.Join(t.Name, "."), scope) + dims}
}

func writeTypeRef(sb *strings.Builder, t *typeRef) {
	sb.WriteString(strings.Join(t.Name, "."))
	if t.Args != nil {
		sb.WriteByte('<')
		for i, a := range t.Args.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			switch {
			case a.Type != nil:
				writeTypeRef(sb, a.Type)
			case a.Wildcard != nil:
				sb.WriteByte('?')
				if b := a.Wildcard.Bound; b != nil {
					sb.WriteString(" " + b.Kind + " ")
					writeTypeRef(sb, b.Type)
				}
			}
		}
		sb.WriteByte('>')
	}
	sb.WriteString(strings.Repeat("[]", len(t.Dims)))
}

var primitives = map[string]bool{
	"boolean": true, "byte": true, "short": true, "char": true,
	"int": true, "long": true, "float": true, "double": true, symbol.Void: true,
}

var javaLang = map[string]bool{
	"Boolean": true, "Byte": true, "Character": true, "Class": true, "Double": true,
	"Enum": true, "Exception": true, "Float": true, "Integer": true, "Iterable": true,
	"Long": true, "Number": true, "Object": true, "Record": true, "Runnable": true,
	"RuntimeException": true, "Short": true, "String": true, "StringBuilder": true,
	"Throwable": true, "Void": true, "CharSequence": true, "Comparable": true,
}

// canonicalIn resolves name from inside the class named scope: member types
// of scope and of its enclosing classes shadow same-named types elsewhere
// in the file.
func (f *File) canonicalIn(name, scope string) string {
	if primitives[name] {
		return name
	}
	for ; scope != "" && scope != f.Package; scope = outerScope(scope) {
		for _, c := range f.classes {
			if c.Qualified == scope+"."+name {
				return c.Qualified
			}
		}
	}
	return f.canonical(name)
}

// outerScope drops the last segment of a qualified name.
func outerScope(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[:i]
	}
	return ""
}

// canonical resolves a (possibly qualified) type name without arguments.
func (f *File) canonical(name string) string {
	switch {
	case primitives[name]:
		return name
	case strings.Contains(name, "."):
		// Outer.Inner declared here, or already fully qualified.
		for _, c := range f.classes {
			if strings.HasSuffix(c.Qualified, "."+name) || c.Qualified == name {
				return c.Qualified
			}
		}
		return name
	}
	for _, c := range f.classes {
		if c.Name == name {
			return c.Qualified
		}
	}
	if q, ok := f.imports[name]; ok {
		return q
	}
	if javaLang[name] {
		return "java.lang." + name
	}
	return name
}
