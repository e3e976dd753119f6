package generator

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/calumari/dtogen/internal/symbol"
)

// DetectAccessors yields the getters of t in method order.
func DetectAccessors(t *symbol.TypeRef) iter.Seq[AccessorCandidate] {
	return func(yield func(AccessorCandidate) bool) {
		if t == nil {
			return
		}
		for _, m := range t.Methods {
			if !IsAccessor(m) {
				continue
			}
			if !yield(AccessorCandidate{Method: m, Property: PropertyName(m.Name)}) {
				return
			}
		}
	}
}

// IsAccessor reports whether m is a public, non-static, zero-argument,
// non-void get<X>/is<X> method other than getClass.
func IsAccessor(m symbol.MethodSig) bool {
	if !m.IsPublic() || m.Static || len(m.Params) != 0 || m.Return.IsVoid() {
		return false
	}
	if m.Name == "getClass" {
		return false
	}
	return (strings.HasPrefix(m.Name, "get") && len(m.Name) > 3) ||
		(strings.HasPrefix(m.Name, "is") && len(m.Name) > 2)
}

// PropertyName derives the property behind an accessor name:
// getUserName -> userName, isActive -> active, getURL -> URL.
func PropertyName(method string) string {
	switch {
	case strings.HasPrefix(method, "get"):
		return decapitalize(method[3:])
	case strings.HasPrefix(method, "is"):
		return decapitalize(method[2:])
	}
	return method
}

// decapitalize lowers the first rune unless the first two runes are both
// upper case, matching the JavaBeans convention.
func decapitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	if second, _ := utf8.DecodeRuneInString(s[size:]); size < len(s) && unicode.IsUpper(first) && unicode.IsUpper(second) {
		return s
	}
	return string(unicode.ToLower(first)) + s[size:]
}
