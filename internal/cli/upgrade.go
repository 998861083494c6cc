package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sofar/internal/sofaio"
)

type upgrade struct {
	app    *App
	target string
	output string
}

func newUpgrade(app *App) *cobra.Command {
	c := &upgrade{app: app}

	cmd := &cobra.Command{
		Use:   "upgrade FILE",
		Short: "Upgrade a SOFA file to the latest convention",
		Long: "Upgrades a file with a deprecated or outdated convention. If more than one\n" +
			"convention can be the target, the candidates are listed and --target selects one.",
		Example: `
sofar upgrade old.sofa.yaml
sofar upgrade tf.sofa.yaml --target SimpleFreeFieldHRTF_1.0 -o hrtf`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cmd.Flags().StringVar(&c.target, "target", "", "Target convention as Name_Version")
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "Output file (default FILE)")

	return cmd
}

func (c *upgrade) run(cmd *cobra.Command, args []string) error {
	o, err := sofaio.ReadFile(args[0], sofaio.ReadOptions{
		Verify:   sofaio.VerifyNever,
		Registry: c.app.registry,
		Logger:   c.app.logger,
		Out:      cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	before := o.String()

	targets, err := o.Upgrade(c.target)
	if err != nil {
		return err
	}

	if len(targets) > 0 {
		for _, t := range targets {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}

		return nil
	}

	if o.String() == before {
		return nil
	}

	path := c.output
	if path == "" {
		path = args[0]
	}

	path = sofaio.WithExt(path)
	if err := sofaio.WriteFile(path, o); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "upgraded %s to %s\n", path, o)

	return nil
}
