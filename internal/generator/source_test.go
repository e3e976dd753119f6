package generator

import (
	"github.com/calumari/dtogen/internal/symbol"
)

// span maps a document range to a value for the fake locator.
type span[T any] struct {
	start, end int
	value      T
}

func lookup[T any](spans []span[T], offset int) (T, bool) {
	for _, s := range spans {
		if offset >= s.start && offset <= s.end {
			return s.value, true
		}
	}
	var zero T
	return zero, false
}

// fakeSource is a hand-wired symbol.Source over a Catalog.
type fakeSource struct {
	*symbol.Catalog
	annotations []span[symbol.TypeName]
	classRefs   []span[string]
	declNames   []span[string]
	variables   map[string]symbol.Variable
}

func newFakeSource(types ...*symbol.TypeRef) *fakeSource {
	return &fakeSource{Catalog: symbol.NewCatalog(types...), variables: map[string]symbol.Variable{}}
}

func (s *fakeSource) declare(v symbol.Variable) *fakeSource {
	s.variables[v.Name] = v
	s.Declare(v)
	return s
}

func (s *fakeSource) TypeAnnotationAt(offset int) (symbol.TypeName, bool) {
	return lookup(s.annotations, offset)
}

func (s *fakeSource) ClassReferenceAt(offset int) (string, bool) { return lookup(s.classRefs, offset) }

func (s *fakeSource) DeclarationNameAt(offset int) (string, bool) { return lookup(s.declNames, offset) }

func (s *fakeSource) VariableAt(offset int) (symbol.Variable, bool) {
	return s.ResolveVariableOrField(offset)
}

func (s *fakeSource) QualifierAt(int) (symbol.Qualifier, bool) { return symbol.Qualifier{}, false }

func (s *fakeSource) VariableNamed(name string, _ int) (symbol.Variable, bool) {
	v, ok := s.variables[name]
	return v, ok
}

func typeName(text, canonical string) symbol.TypeName {
	return symbol.TypeName{Text: text, Canonical: canonical}
}

var (
	intType     = typeName("int", "int")
	booleanType = typeName("boolean", "boolean")
	stringType  = typeName("String", "java.lang.String")
	voidType    = typeName("void", "void")
)

func method(declaring, name string, ret symbol.TypeName, params ...symbol.Param) symbol.MethodSig {
	return symbol.MethodSig{Name: name, Visibility: symbol.Public, Params: params, Return: ret, DeclaringType: declaring}
}

func withObject(methods ...symbol.MethodSig) []symbol.MethodSig {
	return append(methods, symbol.ObjectMethods()...)
}

// orderType has getId and isPaid plus a setter and the Object methods.
func orderType() *symbol.TypeRef {
	return &symbol.TypeRef{
		Name:          "Order",
		QualifiedName: "com.acme.Order",
		Methods: withObject(
			method("Order", "getId", intType),
			method("Order", "isPaid", booleanType),
			method("Order", "setId", voidType, symbol.Param{Name: "id", Type: intType}),
		),
	}
}

// userDtoTypes returns UserDto with a static builder() and its builder.
func userDtoTypes() (*symbol.TypeRef, *symbol.TypeRef) {
	builderName := typeName("UserDtoBuilder", "com.acme.UserDto.UserDtoBuilder")
	factory := method("UserDto", "builder", builderName)
	factory.Static = true
	dto := &symbol.TypeRef{
		Name:          "UserDto",
		QualifiedName: "com.acme.UserDto",
		Methods:       withObject(factory),
	}
	builder := &symbol.TypeRef{
		Name:          "UserDtoBuilder",
		QualifiedName: "com.acme.UserDto.UserDtoBuilder",
		Methods: withObject(
			method("UserDtoBuilder", "name", builderName, symbol.Param{Name: "name", Type: stringType}),
			method("UserDtoBuilder", "age", builderName, symbol.Param{Name: "age", Type: intType}),
			method("UserDtoBuilder", "build", typeName("UserDto", "com.acme.UserDto")),
		),
	}
	return dto, builder
}
