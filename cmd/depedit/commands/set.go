package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/depedit/internal/app"
)

func (c *CLI) newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <package> <attribute> <value>",
		Short: "Set an attribute of a package",
		Long: `Set an attribute of a package, creating the dependency table and the
package entry when they are missing. Setting "version" on a scalar entry
rewrites the version in place; any other attribute turns the entry into a
record that keeps the old version first.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, _ := cmd.Flags().GetString("type")
			create, _ := cmd.Flags().GetBool("create")

			opts := app.SetOptions{
				Options: options(cmd),
				Type:    typ,
				Create:  create,
			}
			return c.app.Set(cmd.Context(), opts, args[0], args[1], args[2])
		},
	}

	cmd.Flags().StringP("type", "t", "string", "Type of the value: string, int, float or bool")
	cmd.Flags().Bool("create", false, "Create the manifest when it does not exist")

	return cmd
}
