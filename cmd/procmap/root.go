package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/awantoch/procmap/config"
	"github.com/awantoch/procmap/constants"
	"github.com/awantoch/procmap/utils"
)

var (
	exit        = os.Exit
	configPath  string
	debug       bool
	orientation string
)

// NewRootCmd creates the root 'procmap' command with persistent flags and
// subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "procmap",
		Short: "Compile tabular process maps into swimlane flow diagrams",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "Path to procmap config JSON")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")
	rootCmd.PersistentFlags().StringVar(&orientation, "orientation", "", "flow direction: LR or TB")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debug {
			utils.SetMode("debug")
		}
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newRenderCmd(),
		newSampleCmd(),
		newHistoryCmd(),
		newServeCmd(),
	)
	return rootCmd
}

// defaultConfigPath honors the config env var over the default file name.
func defaultConfigPath() string {
	if p := os.Getenv(constants.EnvConfigPath); p != "" {
		return p
	}
	return config.DefaultConfigPath
}

// loadServiceConfig reads the config file and applies CLI overrides.
func loadServiceConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if orientation != "" {
		cfg.Render.Orientation = orientation
	}
	return cfg, nil
}
