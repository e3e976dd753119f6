package generator

import "github.com/calumari/dtogen/internal/symbol"

// DefaultValue returns the placeholder literal for a parameter of type t.
// Primitives and their boxes get a zero literal, String gets "" and every
// other type gets null.
func DefaultValue(t symbol.TypeName) string {
	switch canonical(t) {
	case "boolean", "java.lang.Boolean":
		return "false"
	case "int", "java.lang.Integer":
		return "0"
	case "long", "java.lang.Long":
		return "0L"
	case "float", "java.lang.Float":
		return "0.0f"
	case "double", "java.lang.Double":
		return "0.0"
	case "java.lang.String":
		return `""`
	}
	return "null"
}

func canonical(t symbol.TypeName) string {
	if t.Canonical != "" {
		return t.Canonical
	}
	return t.Text
}
