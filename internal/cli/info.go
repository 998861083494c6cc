package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"sofar/internal/sofa"
)

type info struct {
	app    *App
	filter string
}

func newInfo(app *App) *cobra.Command {
	c := &info{app: app}

	cmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Describe the fields of the convention of a SOFA file",
		Example: `
sofar info hrir.sofa.yaml --filter mandatory
sofar info hrir.sofa.yaml --filter Data_IR`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	cmd.Flags().StringVarP(&c.filter, "filter", "f", sofa.InfoAll,
		"all, mandatory, optional, read only, data or a field name")

	return cmd
}

func (c *info) run(cmd *cobra.Command, args []string) error {
	o, err := c.app.read(cmd, args[0])
	if err != nil {
		return err
	}

	text, err := o.Info(c.filter)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), text)

	return nil
}

type inspect struct {
	app  *App
	dump bool
}

func newInspect(app *App) *cobra.Command {
	c := &inspect{app: app}

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Summarize the data of a SOFA file",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	cmd.Flags().BoolVar(&c.dump, "dump", false, "Dump the stored Go values")

	return cmd
}

func (c *inspect) run(cmd *cobra.Command, args []string) error {
	o, err := c.app.read(cmd, args[0])
	if err != nil {
		return err
	}

	if c.dump {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

		for _, name := range o.Fields() {
			v, _ := o.Get(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s", name, cfg.Sdump(v))
		}

		return nil
	}

	text, err := o.Inspect()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), text)

	return nil
}

type dims struct {
	app *App
}

func newDims(app *App) *cobra.Command {
	c := &dims{app: app}

	return &cobra.Command{
		Use:   "dims FILE [LETTER]",
		Short: "Show the dimensions of a SOFA file",
		Example: `
sofar dims hrir.sofa.yaml
sofar dims hrir.sofa.yaml N`,
		Args: cobra.RangeArgs(1, 2),
		RunE: c.run,
	}
}

func (c *dims) run(cmd *cobra.Command, args []string) error {
	o, err := c.app.read(cmd, args[0])
	if err != nil {
		return err
	}

	if len(args) == 2 {
		size, err := o.GetDimension(args[1])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), size)

		return nil
	}

	text, err := o.ListDimensions()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), text)

	return nil
}
