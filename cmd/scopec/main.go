package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/scopec/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("scopec.cli")

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	envVerbosity := cfg.Verbosity

	rootCmd := &cobra.Command{
		Use:           "scopec",
		Short:         "Parse and check scope-oriented source files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbosity := cfg.Verbosity
			if verbosity == 0 {
				verbosity = envVerbosity
			}
			var logFile *string
			if cfg.LogFile != "" {
				logFile = &cfg.LogFile
			}
			commonlog.Configure(verbosity, logFile)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&cfg.Verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().IntVar(&cfg.BlockSize, "block-size", cfg.BlockSize, "nodes per arena block")
	rootCmd.PersistentFlags().IntVar(&cfg.MaxBlocks, "max-blocks", cfg.MaxBlocks, "maximum arena blocks per parse (0 = unlimited)")

	rootCmd.AddCommand(newParseCmd(&cfg))
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newCheckCmd(&cfg))
	rootCmd.AddCommand(newWatchCmd(&cfg))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd(&cfg))

	return rootCmd
}
