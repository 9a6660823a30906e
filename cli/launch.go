// Package cli implements chipstack command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yaptide/chipstack/config"
)

var log = config.NamedLogger("cli")

// Launch ...
func Launch() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// NewRootCommand returns chipstack command with all subcommands.
func NewRootCommand() *cobra.Command {
	conf := config.Default()
	rootCmd := &cobra.Command{
		Use:           "chipstack",
		Short:         "layer stack builder for superconducting chip simulations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&conf.LoggingLevel, "log-level", conf.LoggingLevel, "one of panic, fatal, error, warn, info, debug")
	flags.StringVarP(&conf.OutputDir, "output", "o", conf.OutputDir, "directory of exported files")

	rootCmd.AddCommand(
		generateBuildCmd(&conf),
		generateCrossSectionCmd(&conf),
		generateRenderCmd(&conf),
		generateBatchCmd(&conf),
		generateServeCmd(&conf),
	)
	return rootCmd
}

// setup applies environment and checks conf before a command runs.
func setup(conf *config.Config, checkPortNeeded bool) error {
	config.ReadEnv(conf)
	if err := config.Check(conf, checkPortNeeded); err != nil {
		return err
	}
	return conf.ApplyLoggingLevel()
}
