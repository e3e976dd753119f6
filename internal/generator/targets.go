package generator

import "github.com/calumari/dtogen/internal/symbol"

// targetKind is one way of mapping the caret to a class.
type targetKind int

const (
	targetTypeAnnotation targetKind = iota // `UserDto| user;`
	targetClassReference                   // `new UserDto|()`
	targetDeclarationName                  // `class UserDto| {`
	targetVariable                         // `UserDto user|;`
)

func (k targetKind) String() string {
	switch k {
	case targetTypeAnnotation:
		return "type-annotation"
	case targetClassReference:
		return "class-reference"
	case targetDeclarationName:
		return "declaration-name"
	}
	return "variable"
}

// commandTargets is the order in which caret shapes are tried for the
// builder command; the first that resolves wins.
var commandTargets = []targetKind{
	targetTypeAnnotation,
	targetClassReference,
	targetDeclarationName,
	targetVariable,
}

func (k targetKind) resolve(src symbol.Source, offset int) (*symbol.TypeRef, bool) {
	switch k {
	case targetTypeAnnotation:
		if tn, ok := src.TypeAnnotationAt(offset); ok {
			return resolveTypeName(src, tn)
		}
	case targetClassReference:
		if name, ok := src.ClassReferenceAt(offset); ok {
			return src.ResolveType(name)
		}
	case targetDeclarationName:
		if name, ok := src.DeclarationNameAt(offset); ok {
			return src.ResolveType(name)
		}
	case targetVariable:
		if v, ok := src.ResolveVariableOrField(offset); ok {
			return resolveTypeName(src, v.Type)
		}
	}
	return nil, false
}

// resolveCommandTarget walks commandTargets and returns the first class found.
func resolveCommandTarget(src symbol.Source, offset int) (*symbol.TypeRef, bool) {
	for _, k := range commandTargets {
		if t, ok := k.resolve(src, offset); ok {
			log.Debugf("caret %d resolved to %s via %s", offset, t.Name, k)
			return t, true
		}
	}
	return nil, false
}

func resolveTypeName(m symbol.Model, tn symbol.TypeName) (*symbol.TypeRef, bool) {
	if tn.Canonical != "" {
		if t, ok := m.ResolveType(tn.Canonical); ok {
			return t, true
		}
	}
	return m.ResolveType(tn.Text)
}

// qualifierVariable resolves a completion qualifier naming a variable to the
// variable's declared type.
func qualifierVariable(src symbol.Source, trig Trigger) (*symbol.TypeRef, bool) {
	v, ok := src.VariableNamed(trig.Qualifier, trig.Offset)
	if !ok {
		return nil, false
	}
	return resolveTypeName(src, v.Type)
}

// qualifierClass resolves a completion qualifier naming a class.
func qualifierClass(src symbol.Source, trig Trigger) (*symbol.TypeRef, bool) {
	if _, isVar := src.VariableNamed(trig.Qualifier, trig.Offset); isVar {
		return nil, false
	}
	return src.ResolveType(trig.Qualifier)
}
