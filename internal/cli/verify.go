package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sofar/internal/sofa"
	"sofar/internal/sofaio"
)

type verify struct {
	app     *App
	mode    sofa.Mode
	onIssue sofa.OnIssue
}

func newVerify(app *App) *cobra.Command {
	c := &verify{app: app, onIssue: sofa.OnIssuePrint}

	cmd := &cobra.Command{
		Use:   "verify FILE",
		Short: "Check a SOFA file against its convention",
		Example: `
sofar verify hrir.sofa.yaml --mode write --on-issue fail`,
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}

	enumVar(cmd.Flags(), &c.mode, sofa.ParseMode, "mode", "mode", "Verification mode (read, write)")
	enumVar(cmd.Flags(), &c.onIssue, sofa.ParseOnIssue, "on-issue", "policy",
		"Issue handling (fail, print, collect, ignore)")

	return cmd
}

func (c *verify) run(cmd *cobra.Command, args []string) error {
	o, err := sofaio.ReadFile(args[0], sofaio.ReadOptions{
		Verify:   sofaio.VerifyNever,
		Registry: c.app.registry,
		Logger:   c.app.logger,
		Out:      cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	report, err := o.Verify(c.onIssue, c.mode)
	if err != nil {
		return err
	}

	if report != "" {
		fmt.Fprint(cmd.OutOrStdout(), report)
	}

	return nil
}
