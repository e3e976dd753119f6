// Package symbol is the read-only view over class-like types that the
// generator works against. Everything here is a value snapshot: hosts build
// TypeRef and MethodSig values from their own symbol graph and the generator
// never holds on to them past a single invocation.
package symbol

import "strings"

// Visibility of a member.
type Visibility int

const (
	PackagePrivate Visibility = iota
	Private
	Protected
	Public
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	}
	return "package"
}

// Void is the canonical name of the empty return type.
const Void = "void"

// ObjectType is the implicit root of every class hierarchy.
const ObjectType = "Object"

// TypeName is a declared type as written (Text) and as resolved (Canonical).
// Canonical is the fully qualified name for reference types and the keyword
// for primitives, e.g. "java.lang.String" or "int".
type TypeName struct {
	Text      string
	Canonical string
}

// Simple returns the type name without package qualifier, type arguments or
// array dimensions: "java.util.List<String>[]" -> "List".
func (t TypeName) Simple() string {
	s := t.Text
	if s == "" {
		s = t.Canonical
	}
	if i := strings.IndexAny(s, "<["); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// IsVoid reports whether t names the void type.
func (t TypeName) IsVoid() bool {
	return t.Canonical == Void || (t.Canonical == "" && t.Text == Void)
}

// Param is a single declared method parameter.
type Param struct {
	Name string
	Type TypeName
}

// MethodSig is a method snapshot at detection time.
type MethodSig struct {
	Name          string
	Visibility    Visibility
	Static        bool
	Params        []Param
	Return        TypeName
	DeclaringType string // simple name of the type that declares the method
}

// IsPublic reports whether the method is visible everywhere.
func (m MethodSig) IsPublic() bool { return m.Visibility == Public }

// TypeRef is a resolved class-like type and its full method set.
type TypeRef struct {
	Name          string
	QualifiedName string
	// Methods holds own methods in declaration order, followed by inherited
	// methods that are not overridden, ending with the Object methods.
	Methods []MethodSig
}

// MethodsNamed returns the methods called name, in method order.
func (t *TypeRef) MethodsNamed(name string) []MethodSig {
	if t == nil {
		return nil
	}
	var out []MethodSig
	for _, m := range t.Methods {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// VariableKind distinguishes where a variable was declared.
type VariableKind int

const (
	LocalVariable VariableKind = iota
	FieldVariable
	ParameterVariable
)

func (k VariableKind) String() string {
	switch k {
	case FieldVariable:
		return "field"
	case ParameterVariable:
		return "parameter"
	}
	return "local"
}

// Variable is a declared local, field or parameter.
type Variable struct {
	Name string
	Type TypeName
	Kind VariableKind
	// Offset is where the variable name starts in the document.
	Offset int
}

// Qualifier is the completion context `qualifier.partial|`.
type Qualifier struct {
	Text  string // "order" or "com.acme.UserDto"
	Start int    // offset of the first qualifier character
	// TriggerStart is the offset just after the member-access dot; TriggerEnd
	// is the end of the partially typed member name (equal to TriggerStart
	// when nothing has been typed yet).
	TriggerStart int
	TriggerEnd   int
}

// Model resolves expressions and cursor positions to types.
type Model interface {
	// ResolveType resolves a type name or a simple expression to its type.
	ResolveType(expr string) (*TypeRef, bool)
	// ResolveVariableOrField returns the variable declared at offset.
	ResolveVariableOrField(offset int) (Variable, bool)
}

// Locator answers structural questions about the position under the cursor.
// Each query corresponds to one target resolution strategy.
type Locator interface {
	// TypeAnnotationAt returns the declared type when offset lies on the type
	// of a variable, field, parameter or method declaration.
	TypeAnnotationAt(offset int) (TypeName, bool)
	// ClassReferenceAt returns the class name when the identifier at offset
	// refers to a known class.
	ClassReferenceAt(offset int) (string, bool)
	// DeclarationNameAt returns the class name when offset is on the name in
	// a class, interface, enum or record declaration.
	DeclarationNameAt(offset int) (string, bool)
	// VariableAt returns the variable whose declaration encloses offset.
	VariableAt(offset int) (Variable, bool)
	// QualifierAt returns the member-access context ending at offset.
	QualifierAt(offset int) (Qualifier, bool)
	// VariableNamed resolves a variable name as seen from offset.
	VariableNamed(name string, offset int) (Variable, bool)
}

// Source is what hosts hand to the generator: a model plus a locator over
// the same document.
type Source interface {
	Model
	Locator
}
