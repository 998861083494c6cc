package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sofar/internal/convention"
	"sofar/internal/sofa"
	"sofar/internal/sofaio"
)

type create struct {
	app           *App
	output        string
	version       string
	mandatoryOnly bool
}

func newNew(app *App) *cobra.Command {
	c := &create{app: app}

	cmd := &cobra.Command{
		Use:   "new CONVENTION",
		Short: "Create a SOFA file filled with default values",
		Example: `
sofar new GeneralFIR -o measurement
sofar new SimpleFreeFieldHRIR --version 1.0 --mandatory-only`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cmd.Flags().StringVarP(&c.output, "output", "o", "", "Output file (default CONVENTION"+sofaio.Ext+")")
	cmd.Flags().StringVar(&c.version, "version", convention.Latest, "Convention version")
	cmd.Flags().BoolVar(&c.mandatoryOnly, "mandatory-only", false, "Create mandatory fields only")

	return cmd
}

func (c *create) run(cmd *cobra.Command, args []string) error {
	cfg := c.app.config(cmd)
	cfg.Version = c.version
	cfg.MandatoryOnly = c.mandatoryOnly

	o, err := sofa.New(args[0], cfg)
	if err != nil {
		return err
	}

	path := c.output
	if path == "" {
		path = args[0]
	}

	path = sofaio.WithExt(path)
	if err := sofaio.WriteFile(path, o); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", path, o)

	return nil
}
