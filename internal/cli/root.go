package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kisan-depin/dmrv/pkg/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with values
// injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the dmrv CLI with the given base context and returns an
// error if any command fails. This is the main entry point for the CLI
// application; the context carries signal cancellation from main.
//
// The function sets up the root command with all subcommands (render,
// classify, ask, serve), configures logging based on the --verbose flag,
// loads the optional TOML config, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
		cfg        config.Config
	)

	root := &cobra.Command{
		Use:          "dmrv",
		Short:        "dmrv generates satellite evidence for agricultural compliance",
		Long:         `dmrv is the measurement, reporting, and verification toolkit for stubble-burning compliance: it renders synthetic Sentinel-2 evidence for any coordinate, classifies field photos, and answers farmer questions from a curated knowledge base.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)

			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("dmrv %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")

	root.AddCommand(newRenderCmd(&cfg))
	root.AddCommand(newClassifyCmd(&cfg))
	root.AddCommand(newAskCmd(&cfg))
	root.AddCommand(newServeCmd(&cfg))
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
