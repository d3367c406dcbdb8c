// Package commands implements the CLI commands for depedit.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/depedit/internal/app"
	"go.trai.ch/depedit/internal/build"
)

// CLI represents the command line interface for depedit.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Set(ctx context.Context, opts app.SetOptions, pkg, attr, value string) error
	Get(ctx context.Context, opts app.Options, pkg, attr string) error
	RemoveAttribute(ctx context.Context, opts app.Options, pkg, attr string) error
	RemovePackage(ctx context.Context, opts app.Options, pkg string) error
	List(ctx context.Context, opts app.Options) error
	Show(ctx context.Context, opts app.Options, pkg string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "depedit",
		Short:         "Edit dependency entries of nipm and vipm manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringArrayP("file", "f", nil, "Manifest to edit (repeatable, defaults to the configured manifest)")
	flags.StringP("namespace", "n", "", "Namespace of the dependency table: nipm or vipm")
	flags.StringP("output", "o", "", "Output format of queries: text, json or yaml")
	flags.Bool("json-log", false, "Emit log records as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newSetCmd())
	rootCmd.AddCommand(c.newGetCmd())
	rootCmd.AddCommand(c.newRemoveAttributeCmd())
	rootCmd.AddCommand(c.newRemovePackageCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// options reads the persistent flags shared by every command.
func options(cmd *cobra.Command) app.Options {
	files, _ := cmd.Flags().GetStringArray("file")
	namespace, _ := cmd.Flags().GetString("namespace")
	output, _ := cmd.Flags().GetString("output")
	jsonLog, _ := cmd.Flags().GetBool("json-log")

	return app.Options{
		Files:     files,
		Namespace: namespace,
		Output:    output,
		JSONLog:   jsonLog,
		Out:       cmd.OutOrStdout(),
	}
}
