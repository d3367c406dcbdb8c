package commands

import "github.com/spf13/cobra"

func (c *CLI) newRemoveAttributeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-attr <package> <attribute>",
		Short: "Remove an attribute from a record entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RemoveAttribute(cmd.Context(), options(cmd), args[0], args[1])
		},
	}
}

func (c *CLI) newRemovePackageCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <package>",
		Aliases: []string{"remove"},
		Short:   "Remove a package entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RemovePackage(cmd.Context(), options(cmd), args[0])
		},
	}
}
