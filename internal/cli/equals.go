package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sofar/internal/sofa"
)

var errNotEqual = errors.New("the files are not identical")

type equals struct {
	app     *App
	exclude sofa.Exclude
}

func newEquals(app *App) *cobra.Command {
	c := &equals{app: app}

	cmd := &cobra.Command{
		Use:   "equals FILE FILE",
		Short: "Compare the data of two SOFA files",
		Example: `
sofar equals a.sofa.yaml b.sofa.yaml --exclude DATE`,
		Args: cobra.ExactArgs(2),
		RunE: c.run,
	}

	enumVar(cmd.Flags(), &c.exclude, sofa.ParseExclude, "exclude", "fields",
		"Skip GLOBAL attributes, DATE fields or all ATTR attributes")

	return cmd
}

func (c *equals) run(cmd *cobra.Command, args []string) error {
	a, err := c.app.read(cmd, args[0])
	if err != nil {
		return err
	}

	b, err := c.app.read(cmd, args[1])
	if err != nil {
		return err
	}

	diffs := sofa.Differences(a, b, c.exclude)
	for _, d := range diffs {
		fmt.Fprintln(cmd.OutOrStdout(), d)
	}

	if len(diffs) > 0 {
		return errNotEqual
	}

	fmt.Fprintln(cmd.OutOrStdout(), "identical")

	return nil
}
