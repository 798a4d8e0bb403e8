package terminal

import (
	"io"
	"os"

	"github.com/de-tools/sec-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/sec-atlas/pkg/services/checks"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	factory  commands.RegistryFactory
	catalog  checks.Registry
	reporter *Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	// Factory binds the checks to an account session for the scan command
	Factory commands.RegistryFactory
	// Catalog lists the available categories without requiring credentials
	Catalog checks.Registry
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		factory:  opts.Factory,
		catalog:  opts.Catalog,
		reporter: NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sec-atlas",
		Short:         "Cloud account security scanner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewScanCmd(cli.factory, cli.reporter))
	cmd.AddCommand(commands.NewChecksCmd(cli.catalog))
	cmd.AddCommand(commands.NewProfilesCmd())

	return cmd
}
