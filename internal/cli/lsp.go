package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calumari/dtogen/internal/lsp"
)

func newLSPCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Serve completions and code actions over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := o.generator(".")
			if err != nil {
				return err
			}
			return lsp.New(gen, o.version).RunStdio()
		},
	}
}

func newVersionCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of dtogen",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dtogen %s\n", o.version)
		},
	}
}
