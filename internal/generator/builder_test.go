package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calumari/dtogen/internal/symbol"
)

func TestDetectBuilder(t *testing.T) {
	t.Run("static factory with resolvable builder", func(t *testing.T) {
		dto, builder := userDtoTypes()
		spec, ok := DetectBuilder(symbol.NewCatalog(dto, builder), dto)
		require.True(t, ok)
		assert.Equal(t, "builder", spec.Factory.Name)
		assert.Equal(t, "UserDtoBuilder", spec.Builder.Name)
		require.Len(t, spec.Setters, 2)
		assert.Equal(t, "name", spec.Setters[0].Name)
		assert.Equal(t, "age", spec.Setters[1].Name)
	})

	t.Run("unresolvable builder type", func(t *testing.T) {
		dto, _ := userDtoTypes()
		_, ok := DetectBuilder(symbol.NewCatalog(dto), dto)
		assert.False(t, ok)
	})

	t.Run("no static factory", func(t *testing.T) {
		_, builder := userDtoTypes()
		instance := method("Plain", "builder", typeName("UserDtoBuilder", ""))
		plain := &symbol.TypeRef{Name: "Plain", Methods: withObject(instance)}
		_, ok := DetectBuilder(symbol.NewCatalog(plain, builder), plain)
		assert.False(t, ok)
	})

	t.Run("first static zero-arg overload wins", func(t *testing.T) {
		_, builder := userDtoTypes()
		withArg := method("Multi", "builder", typeName("Other", ""), symbol.Param{Name: "seed", Type: intType})
		withArg.Static = true
		instance := method("Multi", "builder", typeName("Other", ""))
		first := method("Multi", "builder", typeName("UserDtoBuilder", ""))
		first.Static = true
		second := method("Multi", "builder", typeName("Other", ""))
		second.Static = true
		multi := &symbol.TypeRef{Name: "Multi", Methods: []symbol.MethodSig{withArg, instance, first, second}}

		spec, ok := DetectBuilder(symbol.NewCatalog(multi, builder), multi)
		require.True(t, ok)
		assert.Equal(t, "UserDtoBuilder", spec.Builder.Name)
	})

	t.Run("setters are filtered", func(t *testing.T) {
		self := typeName("FooBuilder", "")
		static := method("FooBuilder", "of", self, symbol.Param{Name: "v", Type: intType})
		static.Static = true
		hidden := method("FooBuilder", "secret", self, symbol.Param{Name: "v", Type: intType})
		hidden.Visibility = symbol.Protected
		builder := &symbol.TypeRef{Name: "FooBuilder", Methods: withObject(
			method("FooBuilder", "a", self, symbol.Param{Name: "a", Type: intType}),
			static,
			hidden,
			method("FooBuilder", "pair", self, symbol.Param{Name: "k", Type: intType}, symbol.Param{Name: "v", Type: intType}),
			method("BaseBuilder", "inherited", self, symbol.Param{Name: "x", Type: intType}),
			method("FooBuilder", "b", self, symbol.Param{Name: "b", Type: stringType}),
		)}
		factory := method("Foo", "builder", self)
		factory.Static = true
		foo := &symbol.TypeRef{Name: "Foo", Methods: []symbol.MethodSig{factory}}

		spec, ok := DetectBuilder(symbol.NewCatalog(foo, builder), foo)
		require.True(t, ok)
		var names []string
		for _, s := range spec.Setters {
			names = append(names, s.Name)
		}
		// equals(Object) is declared by Object and therefore dropped
		assert.Equal(t, []string{"a", "b"}, names)
	})

	t.Run("builder without setters", func(t *testing.T) {
		self := typeName("EmptyBuilder", "")
		factory := method("Empty", "builder", self)
		factory.Static = true
		empty := &symbol.TypeRef{Name: "Empty", Methods: []symbol.MethodSig{factory}}
		builder := &symbol.TypeRef{Name: "EmptyBuilder", Methods: withObject(method("EmptyBuilder", "build", typeName("Empty", "")))}

		spec, ok := DetectBuilder(symbol.NewCatalog(empty, builder), empty)
		require.True(t, ok)
		assert.Empty(t, spec.Setters)
	})

	t.Run("configured factory name", func(t *testing.T) {
		dto, builder := userDtoTypes()
		_, ok := detectBuilder(symbol.NewCatalog(dto, builder), dto, "newBuilder")
		assert.False(t, ok)
	})
}

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		t    symbol.TypeName
		want string
	}{
		{booleanType, "false"},
		{typeName("Boolean", "java.lang.Boolean"), "false"},
		{intType, "0"},
		{typeName("Integer", "java.lang.Integer"), "0"},
		{typeName("long", "long"), "0L"},
		{typeName("Long", "java.lang.Long"), "0L"},
		{typeName("float", "float"), "0.0f"},
		{typeName("Float", "java.lang.Float"), "0.0f"},
		{typeName("double", "double"), "0.0"},
		{typeName("Double", "java.lang.Double"), "0.0"},
		{stringType, `""`},
		{typeName("short", "short"), "null"},
		{typeName("char", "char"), "null"},
		{typeName("List<String>", "java.util.List"), "null"},
		{typeName("String", "com.acme.String"), "null"},
		{typeName("int", ""), "0"},
		{typeName("", ""), "null"},
	}
	for _, tt := range tests {
		t.Run(tt.t.Text+"/"+tt.t.Canonical, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultValue(tt.t))
		})
	}
}
