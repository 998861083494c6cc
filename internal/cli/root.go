// Package cli implements the sofar command line.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sofar/internal/convention"
	"sofar/internal/sofa"
	"sofar/internal/sofaio"
)

// App holds the state shared by all commands.
type App struct {
	LogLevel    string
	Conventions string
	Verify      sofaio.Verification

	logger   *logrus.Logger
	registry *convention.Registry
}

// New returns the root command.
func New() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:   "sofar",
		Short: "Create, verify and inspect SOFA data",
		Long: "sofar works with acoustic measurement data stored according to the\n" +
			"Spatially Oriented Format for Acoustics (SOFA) conventions.",
		Example: `
# Create an HRIR data set and check it
sofar new SimpleFreeFieldHRIR -o hrir
sofar verify hrir.sofa.yaml --mode write`,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.LogLevel, "log-level", logrus.InfoLevel.String(), "Log level (debug, info, warn, error)")
	flags.StringVar(&app.Conventions, "conventions", "", "Directory with standardized/ and deprecated/ convention files")
	enumVar(flags, &app.Verify, sofaio.ParseVerification, "verify", "verification",
		"Verify files when reading them (auto, always, never)")

	root.AddCommand(
		newConventions(app),
		newNew(app),
		newVerify(app),
		newInfo(app),
		newInspect(app),
		newDims(app),
		newUpgrade(app),
		newEquals(app),
	)

	return root
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	level, err := logrus.ParseLevel(a.LogLevel)
	if err != nil {
		return err
	}

	a.logger = logrus.New()
	a.logger.SetOutput(cmd.ErrOrStderr())
	a.logger.SetLevel(level)
	a.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	a.registry = convention.Default()
	if a.Conventions != "" {
		info, err := os.Stat(a.Conventions)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", a.Conventions)
		}

		a.registry = convention.NewRegistry(os.DirFS(a.Conventions))
	}

	return nil
}

func (a *App) config(cmd *cobra.Command) sofa.Config {
	cfg := sofa.DefaultConfig()
	cfg.Registry = a.registry
	cfg.Logger = a.logger
	cfg.Out = cmd.OutOrStdout()

	return cfg
}

func (a *App) read(cmd *cobra.Command, path string) (*sofa.Object, error) {
	return sofaio.ReadFile(path, sofaio.ReadOptions{
		Verify:   a.Verify,
		Registry: a.registry,
		Logger:   a.logger,
		Out:      cmd.OutOrStdout(),
	})
}
