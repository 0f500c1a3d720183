package main

import (
	"fmt"
	"io"
	"os"

	"github.com/brettbedarf/navcore/config"
	"github.com/brettbedarf/navcore/internal/util"
	"github.com/spf13/cobra"
)

var version = "dev"

type rootFlags struct {
	configPath string
	verbose    int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "navcore [directory]",
		Short:   "Headless navigation shell",
		Long:    `Navcore drives the file browser core from line commands read on stdin.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			dir, err := startDir(args)
			if err != nil {
				return err
			}
			return runShell(cmd.Context(), dir, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a yaml or json config file")
	rootCmd.PersistentFlags().IntVarP(&flags.verbose, "verbose", "v", config.InfoVerbose,
		"Log verbosity level between 1 (error) and 5 (trace)")

	rootCmd.AddCommand(newCompleteCmd(flags))
	return rootCmd
}

// loadConfig reads the config file if one is given, applies --verbose when set
// and initializes the logger from the result.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	if flags.configPath != "" {
		var err error
		cfg, err = config.NewConfigFromFile(flags.configPath)
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("verbose") {
		cfg.LogLvl = config.VerboseToLogLevel(flags.verbose)
	}

	var out io.Writer = cmd.ErrOrStderr()
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
	}
	util.InitializeLoggerTo(cfg.LogLvl, out)

	logger := util.GetLogger("main")
	logger.Debug().Str("config", flags.configPath).Dur("debounce", cfg.DebounceWindow).Msg("Configuration loaded")
	return cfg, nil
}

func startDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("error getting current directory: %w", err)
	}
	return dir, nil
}
