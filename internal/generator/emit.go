package generator

import (
	"strconv"
	"strings"
)

// varNameStop is the template variable holding the declared variable name.
const varNameStop = "VAR_NAME"

// GetterChain renders one assignment per accessor:
//
//	int id = order.getId();
//	boolean paid = order.isPaid();
//
// The first line carries no indentation; later lines start with indent.
func GetterChain(variable string, accessors []AccessorCandidate, indent string) string {
	var sb strings.Builder
	for i, a := range accessors {
		if i > 0 {
			sb.WriteString("\n")
			sb.WriteString(indent)
		}
		returnType := a.Method.Return.Text
		if returnType == "" {
			returnType = "var"
		}
		sb.WriteString(returnType)
		sb.WriteString(" ")
		sb.WriteString(a.Property)
		sb.WriteString(" = ")
		sb.WriteString(variable)
		sb.WriteString(".")
		sb.WriteString(a.Method.Name)
		sb.WriteString("();")
	}
	return sb.String()
}

// BuilderChain renders the non-interactive chain with null for every value.
func (g *Generator) BuilderChain(qualifier string, spec *BuilderSpec, indent string) string {
	var sb strings.Builder
	sb.WriteString(qualifier + "." + spec.Factory.Name + "()")
	cont := "\n" + indent + g.cfg.ContinuationIndent
	for _, s := range spec.Setters {
		sb.WriteString(cont + "." + s.Name + "(null)")
	}
	sb.WriteString(cont + "." + g.cfg.BuildMethod + "();")
	return sb.String()
}

// BuilderTemplate renders the interactive chain. Each setter value is an
// editable stop seeded from DefaultValue; a standalone position also gets a
// `Type name = ` declaration whose name is editable.
func (g *Generator) BuilderTemplate(qualifier string, spec *BuilderSpec, indent string, standalone bool) *Template {
	b := NewTemplate()
	if standalone {
		typeName := spec.Target.Name
		b.Text(typeName + " ").Variable(varNameStop, suggestVarName(typeName)).Text(" = ")
	}
	b.Text(qualifier + "." + spec.Factory.Name + "()")
	cont := "\n" + indent + g.cfg.ContinuationIndent
	for i, s := range spec.Setters {
		b.Text(cont + "." + s.Name + "(")
		b.Variable("ARG"+strconv.Itoa(i+1), DefaultValue(s.Params[0].Type))
		b.Text(")")
	}
	b.Text(cont + "." + g.cfg.BuildMethod + "();")
	return b.Build()
}

func suggestVarName(typeName string) string {
	if typeName == "" {
		return "dto"
	}
	return decapitalize(typeName)
}
