// Package cli implements the dtogen command line.
package cli

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/calumari/dtogen/internal/config"
	"github.com/calumari/dtogen/internal/generator"
)

var log = commonlog.GetLogger("dtogen.cli")

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	verbose    int
	noColor    bool
	version    string
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	o := &options{version: version}
	root := &cobra.Command{
		Use:   "dtogen",
		Short: "Generate getter and builder chains for Java classes",
		Long: `dtogen writes the boilerplate around data classes.

Given a Java source file and a caret position it can:
  - expand every getter of a variable into typed local assignments
  - expand a builder factory into a fluent chain with one call per setter

Quick Start:
  dtogen getters -f Order.java --line 12 --col 9
  dtogen builder -f Factory.java --offset 310 -w
  dtogen complete -f Factory.java --line 4 --col 19 --item builderChain
  dtogen lsp                 Serve completions and code actions over stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.noColor {
				color.NoColor = true
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "configuration file (default: nearest "+config.FileName+")")
	f.CountVarP(&o.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newGettersCommand(o),
		newBuilderCommand(o),
		newCompleteCommand(o),
		newLSPCommand(o),
		newVersionCommand(o),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(version string) int {
	root := NewRootCommand(version)
	if err := root.Execute(); err != nil {
		newReporter(root.ErrOrStderr()).failure(err)
		return 1
	}
	return 0
}

// loadConfig reads --config, or the nearest config file above dir, and
// configures logging from it.
func (o *options) loadConfig(dir string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.FindAndLoad(dir)
	}
	if err != nil {
		return nil, err
	}
	commonlog.Configure(max(o.verbose, cfg.LogLevel), nil)
	if cfg.Path != "" {
		log.Debugf("using %s", cfg.Path)
	}
	return cfg, nil
}

func (o *options) generator(file string) (*generator.Generator, error) {
	cfg, err := o.loadConfig(filepath.Dir(file))
	if err != nil {
		return nil, err
	}
	return generator.New(cfg.Generator()), nil
}
