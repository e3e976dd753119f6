package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calumari/dtogen/internal/document"
	"github.com/calumari/dtogen/internal/generator"
	"github.com/calumari/dtogen/internal/javasrc"
)

var errNoQualifier = errors.New("no member access at caret")

// caretFlags select the file and caret of one invocation.
type caretFlags struct {
	file   string
	offset int
	line   int
	col    int
	write  bool
}

func (c *caretFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&c.file, "file", "f", "", "Java source file (required)")
	f.IntVar(&c.offset, "offset", -1, "caret byte offset")
	f.IntVar(&c.line, "line", 0, "caret line, 1-based")
	f.IntVar(&c.col, "col", 0, "caret column in bytes, 1-based")
	f.BoolVarP(&c.write, "write", "w", false, "write the result back to the file instead of stdout")
	_ = cmd.MarkFlagRequired("file")
	cmd.MarkFlagsMutuallyExclusive("offset", "line")
	cmd.MarkFlagsRequiredTogether("line", "col")
	cmd.MarkFlagsOneRequired("offset", "line")
}

// session is a parsed file plus its editable buffer.
type session struct {
	gen   *generator.Generator
	src   *javasrc.File
	buf   *document.Buffer
	caret int
}

func (o *options) open(c *caretFlags) (*session, error) {
	data, err := os.ReadFile(c.file)
	if err != nil {
		return nil, err
	}
	gen, err := o.generator(c.file)
	if err != nil {
		return nil, err
	}
	src, err := javasrc.Parse(c.file, string(data))
	if err != nil {
		return nil, err
	}
	buf := document.New(string(data))

	caret := c.offset
	if caret < 0 {
		caret, err = buf.OffsetAt(c.line-1, c.col-1)
		if err != nil {
			return nil, fmt.Errorf("caret: %w", err)
		}
	} else if caret > buf.Len() {
		return nil, fmt.Errorf("caret: offset %d: %w", caret, document.ErrOutOfRange)
	}
	log.Debugf("%s: caret at %d", c.file, caret)
	return &session{gen: gen, src: src, buf: buf, caret: caret}, nil
}

// finish prints or saves the edited buffer.
func (s *session) finish(cmd *cobra.Command, c *caretFlags, id string, edit *generator.Edit) error {
	rep := newReporter(cmd.ErrOrStderr())
	if c.write {
		info, err := os.Stat(c.file)
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.file, []byte(s.buf.Text()), info.Mode().Perm()); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), s.buf.Text())
	}
	line := s.buf.LineNumber(edit.Range.Start) + 1
	rep.success("%s: %s line %d", id, c.file, line)
	return nil
}

func newCommandAction(o *options, id, use, short, long string) *cobra.Command {
	var c caretFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(&c)
			if err != nil {
				return err
			}
			a, _ := s.gen.Action(id)
			inv := generator.Invocation{Source: s.src, Document: s.buf, Trigger: generator.CommandTrigger(s.caret)}
			if !a.Applicable(inv) {
				return fmt.Errorf("%s at %s:%d: %w", id, c.file, s.caret, generator.ErrNotApplicable)
			}
			edit, err := s.gen.Apply(a, inv)
			if err != nil {
				return err
			}
			if edit == nil {
				newReporter(cmd.ErrOrStderr()).warning("%s: nothing to generate", id)
				return nil
			}
			return s.finish(cmd, &c, id, edit)
		},
	}
	c.register(cmd)
	return cmd
}

func newGettersCommand(o *options) *cobra.Command {
	return newCommandAction(o, generator.AccessorChainID,
		"getters",
		"Expand the getters of the variable at the caret",
		`Insert one typed assignment per getter of the variable under the caret,
on the lines following the caret line:

    Order current = order;
    int id = current.getId();
    boolean paid = current.isPaid();`)
}

func newBuilderCommand(o *options) *cobra.Command {
	return newCommandAction(o, generator.BuilderChainID,
		"builder",
		"Expand the builder of the type at the caret",
		`Insert a fluent builder chain for the type under the caret. The caret may
sit on a declared type, a class reference or a class declaration name.
Every setter receives null:

    UserDto.builder()
        .name(null)
        .build();`)
}

func newCompleteCommand(o *options) *cobra.Command {
	var (
		c       caretFlags
		item    string
		snippet bool
	)
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "List or accept completion items after a member-access dot",
		Long: `Without --item, list the generation items offered at the caret, which must
follow "qualifier." (optionally with a partially typed name).

With --item, accept that item: the typed "qualifier.partial" is replaced by
the generated code with every value at its default. --snippet prints the
LSP snippet form of the item instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(&c)
			if err != nil {
				return err
			}
			q, ok := s.src.QualifierAt(s.caret)
			if !ok {
				return fmt.Errorf("%s:%d: %w", c.file, s.caret, errNoQualifier)
			}
			inv := generator.Invocation{Source: s.src, Document: s.buf, Trigger: generator.CompletionTrigger(q)}

			out := cmd.OutOrStdout()
			if item == "" {
				for _, a := range s.gen.Applicable(inv) {
					fmt.Fprintf(out, "%s\t%s\n", a.ID(), a.Title())
				}
				return nil
			}

			a, ok := s.gen.Action(item)
			if !ok {
				return fmt.Errorf("unknown item %q", item)
			}
			if !a.Applicable(inv) {
				return fmt.Errorf("%s after %q: %w", item, q.Text, generator.ErrNotApplicable)
			}
			if snippet {
				edit, err := a.Plan(inv)
				if err != nil {
					return err
				}
				if edit == nil {
					return nil
				}
				if edit.Template != nil {
					fmt.Fprintln(out, edit.Template.Snippet())
				} else {
					fmt.Fprintln(out, edit.Text)
				}
				return nil
			}
			edit, err := s.gen.Commit(a, inv)
			if err != nil {
				return err
			}
			if edit == nil {
				newReporter(cmd.ErrOrStderr()).warning("%s: nothing to generate", item)
				return nil
			}
			return s.finish(cmd, &c, item, edit)
		},
	}
	c.register(cmd)
	cmd.Flags().StringVar(&item, "item", "", "item to accept: "+generator.AccessorChainID+" or "+generator.BuilderChainID)
	cmd.Flags().BoolVar(&snippet, "snippet", false, "print the item as an LSP snippet")
	cmd.MarkFlagsMutuallyExclusive("snippet", "write")
	return cmd
}
