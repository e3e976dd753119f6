package javasrc

import (
	"strings"

	"github.com/calumari/dtogen/internal/symbol"
)

// Index resolves types across a set of parsed files. A file returned by
// Parse starts out in an index of its own.
type Index struct {
	files []*File
}

// NewIndex groups files so that types declared in one resolve from the
// others. Files keep pointing at the newest index they were added to.
func NewIndex(files ...*File) *Index {
	ix := &Index{files: files}
	for _, f := range files {
		f.scope = ix
	}
	return ix
}

var _ symbol.Source = (*File)(nil)

func newIndex(f *File) *Index { return &Index{files: []*File{f}} }

// Files returns the indexed files in the order given.
func (ix *Index) Files() []*File { return ix.files }

// ResolveType resolves a type name, ignoring type arguments and array
// dimensions. Qualified names win over simple ones.
func (ix *Index) ResolveType(expr string) (*symbol.TypeRef, bool) {
	return ix.resolve(expr, nil)
}

func (ix *Index) resolve(expr string, from *File) (*symbol.TypeRef, bool) {
	name := baseTypeName(expr)
	if name == "" {
		return nil, false
	}
	c := ix.lookup(name, from)
	if c == nil {
		log.Debugf("type %q not found", expr)
		return nil, false
	}
	return ix.typeRef(c), true
}

// baseTypeName strips type arguments, array dimensions and varargs.
func baseTypeName(expr string) string {
	expr = strings.TrimSuffix(strings.TrimSpace(expr), "...")
	if i := strings.IndexAny(expr, "<["); i >= 0 {
		expr = expr[:i]
	}
	return strings.TrimSpace(expr)
}

func (ix *Index) lookup(name string, from *File) *classInfo {
	if from != nil {
		if c := ix.byQualified(from.canonical(name)); c != nil {
			return c
		}
	}
	if c := ix.byQualified(name); c != nil {
		return c
	}
	if strings.Contains(name, ".") {
		for _, f := range ix.files {
			for _, c := range f.classes {
				if strings.HasSuffix(c.Qualified, "."+name) {
					return c
				}
			}
		}
		name = name[strings.LastIndexByte(name, '.')+1:]
	}
	for _, f := range ix.files {
		for _, c := range f.classes {
			if c.Name == name {
				return c
			}
		}
	}
	return nil
}

func (ix *Index) byQualified(q string) *classInfo {
	for _, f := range ix.files {
		for _, c := range f.classes {
			if c.Qualified == q {
				return c
			}
		}
	}
	return nil
}

// typeRef snapshots c: own methods, then inherited ones not overridden
// (superclass chain before interfaces), then the Object methods.
func (ix *Index) typeRef(c *classInfo) *symbol.TypeRef {
	t := &symbol.TypeRef{Name: c.Name, QualifiedName: c.Qualified}
	seen := map[string]bool{}
	add := func(m symbol.MethodSig) {
		key := signature(m)
		if seen[key] {
			return
		}
		seen[key] = true
		t.Methods = append(t.Methods, m)
	}
	visited := map[*classInfo]bool{}
	var walk func(c *classInfo, inherited bool)
	walk = func(c *classInfo, inherited bool) {
		if visited[c] {
			return
		}
		visited[c] = true
		for _, m := range c.Methods {
			if inherited && m.Visibility == symbol.Private {
				continue
			}
			add(m)
		}
		for _, super := range c.Supers {
			if sc := ix.lookup(super.Canonical, c.file); sc != nil {
				walk(sc, true)
			} else if sc := ix.lookup(super.Simple(), c.file); sc != nil {
				walk(sc, true)
			}
		}
	}
	walk(c, false)
	for _, m := range symbol.ObjectMethods() {
		add(m)
	}
	return t
}

// signature identifies a method for override checks: name plus erased
// parameter types.
func signature(m symbol.MethodSig) string {
	var sb strings.Builder
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		t := p.Type.Canonical
		if t == "" {
			t = p.Type.Text
		}
		sb.WriteString(baseTypeName(t))
		if strings.HasSuffix(t, "[]") {
			sb.WriteString("[]")
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// ResolveType resolves expr as seen from this file: own classes, then
// imports and java.lang, then any class in the index.
func (f *File) ResolveType(expr string) (*symbol.TypeRef, bool) {
	return f.scope.resolve(expr, f)
}

// Types returns the qualified names of the types declared in the file,
// including synthesized builders.
func (f *File) Types() []string {
	names := make([]string, 0, len(f.classes))
	for _, c := range f.classes {
		names = append(names, c.Qualified)
	}
	return names
}
