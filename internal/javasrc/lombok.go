package javasrc

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/calumari/dtogen/internal/symbol"
)

// Lombok generates members at compile time that never appear in source.
// The subset synthesized here is what the generator can observe: getters
// from @Getter/@Data/@Value and the builder pair from @Builder.

var classGetterAnnotations = []string{"Getter", "Data", "Value"}

func synthesizeLombok(c *classInfo) {
	classGetters := slices.ContainsFunc(classGetterAnnotations, func(a string) bool {
		return slices.Contains(c.Annotations, a)
	})
	for _, fi := range c.Fields {
		if fi.Static {
			continue
		}
		if classGetters || slices.Contains(fi.Annotations, "Getter") {
			addMethod(c, symbol.MethodSig{
				Name:          getterName(fi),
				Visibility:    symbol.Public,
				Return:        fi.Type,
				DeclaringType: c.Name,
			})
		}
	}
	if slices.Contains(c.Annotations, "Builder") {
		synthesizeBuilder(c)
	}
}

// getterName follows Lombok: isActive for a boolean "active", and a boolean
// field already named isActive keeps that name.
func getterName(fi fieldInfo) string {
	if fi.Type.Canonical != "boolean" {
		return "get" + capitalize(fi.Name)
	}
	if len(fi.Name) > 2 && fi.Name[:2] == "is" {
		if r, _ := utf8.DecodeRuneInString(fi.Name[2:]); unicode.IsUpper(r) {
			return fi.Name
		}
	}
	return "is" + capitalize(fi.Name)
}

func synthesizeBuilder(c *classInfo) {
	name := c.Name + "Builder"
	builderType := symbol.TypeName{Text: name, Canonical: c.Qualified + "." + name}
	addMethod(c, symbol.MethodSig{
		Name:          "builder",
		Visibility:    symbol.Public,
		Static:        true,
		Return:        builderType,
		DeclaringType: c.Name,
	})

	b := findClass(c.file, builderType.Canonical)
	if b == nil {
		b = &classInfo{Name: name, Qualified: builderType.Canonical, Kind: "class", NameOffset: -1, file: c.file}
		c.file.classes = append(c.file.classes, b)
	}
	for _, fi := range c.Fields {
		if fi.Static || (fi.Final && fi.Initialized) {
			continue
		}
		addMethod(b, symbol.MethodSig{
			Name:          fi.Name,
			Visibility:    symbol.Public,
			Params:        []symbol.Param{{Name: fi.Name, Type: fi.Type}},
			Return:        builderType,
			DeclaringType: name,
		})
	}
	addMethod(b, symbol.MethodSig{
		Name:          "build",
		Visibility:    symbol.Public,
		Return:        symbol.TypeName{Text: c.Name, Canonical: c.Qualified},
		DeclaringType: name,
	})
	addMethod(b, symbol.MethodSig{
		Name:          "toString",
		Visibility:    symbol.Public,
		Return:        symbol.TypeName{Text: "String", Canonical: "java.lang.String"},
		DeclaringType: name,
	})
}

// addMethod appends m unless c already declares a method with the same
// signature; hand-written members win over generated ones.
func addMethod(c *classInfo, m symbol.MethodSig) {
	key := signature(m)
	for _, existing := range c.Methods {
		if signature(existing) == key {
			return
		}
	}
	c.Methods = append(c.Methods, m)
}

func findClass(f *File, qualified string) *classInfo {
	for _, c := range f.classes {
		if c.Qualified == qualified {
			return c
		}
	}
	return nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
