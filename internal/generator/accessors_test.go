package generator

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calumari/dtogen/internal/symbol"
)

func TestDetectAccessors(t *testing.T) {
	t.Run("getters in method order", func(t *testing.T) {
		got := slices.Collect(DetectAccessors(orderType()))
		require.Len(t, got, 2)
		assert.Equal(t, "getId", got[0].Method.Name)
		assert.Equal(t, "id", got[0].Property)
		assert.Equal(t, "isPaid", got[1].Method.Name)
		assert.Equal(t, "paid", got[1].Property)
	})

	t.Run("nil type yields nothing", func(t *testing.T) {
		assert.Empty(t, slices.Collect(DetectAccessors(nil)))
	})

	t.Run("only Object methods", func(t *testing.T) {
		empty := &symbol.TypeRef{Name: "Empty", Methods: symbol.ObjectMethods()}
		assert.Empty(t, slices.Collect(DetectAccessors(empty)))
	})

	t.Run("stops when the consumer does", func(t *testing.T) {
		var seen []string
		for a := range DetectAccessors(orderType()) {
			seen = append(seen, a.Property)
			break
		}
		assert.Equal(t, []string{"id"}, seen)
	})
}

func TestIsAccessor(t *testing.T) {
	static := method("T", "getCount", intType)
	static.Static = true
	private := method("T", "getSecret", stringType)
	private.Visibility = symbol.Private

	tests := []struct {
		name string
		m    symbol.MethodSig
		want bool
	}{
		{"getter", method("T", "getName", stringType), true},
		{"boolean getter", method("T", "isActive", booleanType), true},
		{"boxed is-getter", method("T", "isReady", typeName("Boolean", "java.lang.Boolean")), true},
		{"getClass", method("T", "getClass", typeName("Class<?>", "java.lang.Class")), false},
		{"bare get", method("T", "get", stringType), false},
		{"bare is", method("T", "is", booleanType), false},
		{"void", method("T", "getNothing", voidType), false},
		{"parameter", method("T", "getAt", stringType, symbol.Param{Name: "i", Type: intType}), false},
		{"static", static, false},
		{"private", private, false},
		{"other prefix", method("T", "name", stringType), false},
		{"prefix without capital", method("T", "getaway", stringType), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAccessor(tt.m))
		})
	}
}

func TestPropertyName(t *testing.T) {
	tests := map[string]string{
		"getUserName": "userName",
		"isActive":    "active",
		"getURL":      "URL",
		"getX":        "x",
		"getaway":     "away",
		"isÜber":      "über",
		"name":        "name",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, PropertyName(in))
		})
	}
}
