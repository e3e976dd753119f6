package symbol

import "strings"

// Catalog is an in-memory Model over hand-built TypeRefs. Hosts without a
// live symbol graph (and tests) use it directly.
type Catalog struct {
	types map[string]*TypeRef
	vars  []Variable
}

// NewCatalog indexes the given types by simple and qualified name.
func NewCatalog(types ...*TypeRef) *Catalog {
	c := &Catalog{types: make(map[string]*TypeRef)}
	for _, t := range types {
		c.Add(t)
	}
	return c
}

// Add registers t. A later type with the same name replaces the earlier one.
func (c *Catalog) Add(t *TypeRef) {
	if t == nil {
		return
	}
	c.types[t.Name] = t
	if t.QualifiedName != "" {
		c.types[t.QualifiedName] = t
	}
}

// Declare records a variable so that ResolveVariableOrField can find it by
// any offset inside its name.
func (c *Catalog) Declare(v Variable) { c.vars = append(c.vars, v) }

// ResolveType looks expr up by name, ignoring type arguments and array
// dimensions.
func (c *Catalog) ResolveType(expr string) (*TypeRef, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, false
	}
	if t, ok := c.types[expr]; ok {
		return t, true
	}
	simple := TypeName{Text: expr}.Simple()
	t, ok := c.types[simple]
	return t, ok
}

// ResolveVariableOrField returns the declared variable whose name covers offset.
func (c *Catalog) ResolveVariableOrField(offset int) (Variable, bool) {
	for _, v := range c.vars {
		if offset >= v.Offset && offset <= v.Offset+len(v.Name) {
			return v, true
		}
	}
	return Variable{}, false
}

// ObjectMethods returns the implicit java.lang.Object members every class
// inherits.
func ObjectMethods() []MethodSig {
	obj := func(name string, ret TypeName, params ...Param) MethodSig {
		return MethodSig{Name: name, Visibility: Public, Params: params, Return: ret, DeclaringType: ObjectType}
	}
	void := TypeName{Text: Void, Canonical: Void}
	return []MethodSig{
		obj("getClass", TypeName{Text: "Class<?>", Canonical: "java.lang.Class"}),
		obj("hashCode", TypeName{Text: "int", Canonical: "int"}),
		obj("equals", TypeName{Text: "boolean", Canonical: "boolean"}, Param{Name: "obj", Type: TypeName{Text: "Object", Canonical: "java.lang.Object"}}),
		obj("toString", TypeName{Text: "String", Canonical: "java.lang.String"}),
		obj("notify", void),
		obj("notifyAll", void),
		obj("wait", void),
		obj("wait", void, Param{Name: "timeoutMillis", Type: TypeName{Text: "long", Canonical: "long"}}),
	}
}
