package config

import "github.com/awantoch/procmap/constants"

// Default directories and file paths for procmap.
const (
	// DefaultConfigDir is the base directory for procmap artifacts.
	DefaultConfigDir = ".procmap"
	// DefaultConfigPath is where the CLI looks for configuration.
	DefaultConfigPath = constants.ConfigFileName
)
