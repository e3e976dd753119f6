package generator

import "github.com/calumari/dtogen/internal/symbol"

// DetectBuilder reports whether t exposes a static builder() factory and, if
// so, which fluent setters its builder declares.
func DetectBuilder(m symbol.Model, t *symbol.TypeRef) (*BuilderSpec, bool) {
	return detectBuilder(m, t, defaultFactoryMethod)
}

func detectBuilder(m symbol.Model, t *symbol.TypeRef, factoryName string) (*BuilderSpec, bool) {
	factory, ok := findFactory(t, factoryName)
	if !ok {
		return nil, false
	}
	builder, ok := resolveTypeName(m, factory.Return)
	if !ok || builder == nil {
		log.Debugf("%s.%s() returns unresolved type %q", t.Name, factoryName, factory.Return.Text)
		return nil, false
	}
	return &BuilderSpec{
		Target:  t,
		Factory: factory,
		Builder: builder,
		Setters: builderSetters(builder),
	}, true
}

// findFactory returns the first static zero-argument overload of name.
func findFactory(t *symbol.TypeRef, name string) (symbol.MethodSig, bool) {
	for _, m := range t.MethodsNamed(name) {
		if len(m.Params) == 0 && m.Static {
			return m, true
		}
	}
	return symbol.MethodSig{}, false
}

// builderSetters keeps single-argument public instance methods declared by the
// builder itself; inherited methods such as equals(Object) are dropped.
func builderSetters(builder *symbol.TypeRef) []symbol.MethodSig {
	var setters []symbol.MethodSig
	for _, m := range builder.Methods {
		if !m.IsPublic() || m.Static || len(m.Params) != 1 {
			continue
		}
		if m.DeclaringType != builder.Name {
			continue
		}
		setters = append(setters, m)
	}
	return setters
}
