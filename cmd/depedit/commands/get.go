package commands

import "github.com/spf13/cobra"

func (c *CLI) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <package> <attribute>",
		Short: "Print an attribute of a package",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Get(cmd.Context(), options(cmd), args[0], args[1])
		},
	}
}
