package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/calumari/dtogen/internal/generator"
)

// reporter writes status lines for humans; generated code goes to stdout.
type reporter struct {
	w io.Writer
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w}
}

func (r *reporter) success(format string, args ...any) {
	color.New(color.FgGreen, color.Bold).Fprint(r.w, "✓ ")
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *reporter) warning(format string, args ...any) {
	color.New(color.FgYellow, color.Bold).Fprint(r.w, "! ")
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *reporter) failure(err error) {
	color.New(color.FgRed, color.Bold).Fprint(r.w, "error: ")
	fmt.Fprintln(r.w, err)
	if hint := hintFor(err); hint != "" {
		color.New(color.Faint).Fprintf(r.w, "  hint: %s\n", hint)
	}
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, generator.ErrNotApplicable):
		return "place the caret on a variable, a declared type or a class name"
	case errors.Is(err, generator.ErrInvalidSplice):
		return "the caret must follow a member-access dot, e.g. order.|"
	case errors.Is(err, errNoQualifier):
		return "completions need a qualifier such as order. or UserDto. before the caret"
	}
	return ""
}
