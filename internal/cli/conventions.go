package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type conventions struct {
	app        *App
	deprecated bool
	paths      bool
}

func newConventions(app *App) *cobra.Command {
	c := &conventions{app: app}

	cmd := &cobra.Command{
		Use:     "conventions",
		Aliases: []string{"ls"},
		Short:   "List the available conventions",
		Example: `
sofar conventions --deprecated`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	cmd.Flags().BoolVar(&c.deprecated, "deprecated", false, "Include deprecated conventions")
	cmd.Flags().BoolVar(&c.paths, "paths", false, "Print the convention file paths")

	return cmd
}

func (c *conventions) run(cmd *cobra.Command, _ []string) error {
	ids, err := c.app.registry.List()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if id.Deprecated && !c.deprecated {
			continue
		}

		line := id.String()
		if c.paths {
			line = id.Path
		}

		if id.Deprecated {
			line += " (deprecated)"
		}

		fmt.Fprintln(cmd.OutOrStdout(), line)
	}

	return nil
}
