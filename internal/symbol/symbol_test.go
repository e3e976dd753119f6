package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		in   TypeName
		want string
	}{
		{TypeName{Text: "java.util.List<String>[]"}, "List"},
		{TypeName{Text: "Map<String, Integer>"}, "Map"},
		{TypeName{Canonical: "com.acme.Order"}, "Order"},
		{TypeName{Text: "int", Canonical: "int"}, "int"},
		{TypeName{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Simple())
	}

	assert.True(t, TypeName{Text: "void", Canonical: "void"}.IsVoid())
	assert.True(t, TypeName{Text: "void"}.IsVoid())
	assert.False(t, TypeName{Text: "Void", Canonical: "java.lang.Void"}.IsVoid())
}

func TestMethodsNamed(t *testing.T) {
	ref := &TypeRef{Name: "T", Methods: ObjectMethods()}
	assert.Len(t, ref.MethodsNamed("wait"), 2)
	assert.Empty(t, ref.MethodsNamed("nope"))

	var missing *TypeRef
	assert.Nil(t, missing.MethodsNamed("wait"))
}

func TestCatalog(t *testing.T) {
	order := &TypeRef{Name: "Order", QualifiedName: "com.acme.Order"}
	c := NewCatalog(order, nil)

	t.Run("resolve by simple and qualified name", func(t *testing.T) {
		for _, expr := range []string{"Order", "com.acme.Order", " Order ", "Order<String>", "Order[]", "other.pkg.Order"} {
			got, ok := c.ResolveType(expr)
			require.True(t, ok, expr)
			assert.Same(t, order, got)
		}
		_, ok := c.ResolveType("")
		assert.False(t, ok)
		_, ok = c.ResolveType("Invoice")
		assert.False(t, ok)
	})

	t.Run("variables cover their name", func(t *testing.T) {
		c.Declare(Variable{Name: "order", Type: TypeName{Text: "Order"}, Kind: FieldVariable, Offset: 10})
		for _, offset := range []int{10, 12, 15} {
			v, ok := c.ResolveVariableOrField(offset)
			require.True(t, ok)
			assert.Equal(t, "order", v.Name)
		}
		_, ok := c.ResolveVariableOrField(9)
		assert.False(t, ok)
		_, ok = c.ResolveVariableOrField(16)
		assert.False(t, ok)
	})
}

func TestObjectMethods(t *testing.T) {
	methods := ObjectMethods()
	require.Len(t, methods, 8)
	for _, m := range methods {
		assert.Equal(t, ObjectType, m.DeclaringType)
		assert.True(t, m.IsPublic())
		assert.False(t, m.Static)
	}
	assert.Equal(t, "getClass", methods[0].Name)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "public", Public.String())
	assert.Equal(t, "protected", Protected.String())
	assert.Equal(t, "private", Private.String())
	assert.Equal(t, "package", PackagePrivate.String())
	assert.Equal(t, "field", FieldVariable.String())
	assert.Equal(t, "parameter", ParameterVariable.String())
	assert.Equal(t, "local", LocalVariable.String())
}
