// Package config loads the procmap JSON configuration file.
package config

import (
	"encoding/json"
	"os"
)

type Config struct {
	Storage StorageConfig `json:"storage"`
	Blob    BlobConfig    `json:"blob"`
	HTTP    HTTPConfig    `json:"http"`
	Log     LogConfig     `json:"log"`
	Render  RenderConfig  `json:"render"`
}

type StorageConfig struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

type BlobConfig struct {
	Driver    string `json:"driver"`
	Directory string `json:"directory,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	Region    string `json:"region,omitempty"`
}

type HTTPConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type LogConfig struct {
	Level string `json:"level"`
}

// RenderConfig carries the diagram-shaping options.
type RenderConfig struct {
	// Orientation is the flow direction: LR (default) or TB.
	Orientation string `json:"orientation,omitempty"`
	// DotBinary overrides the Graphviz layout binary used for raster output.
	DotBinary string `json:"dot_binary,omitempty"`
	// LabelTemplate optionally replaces the default node-label composition.
	LabelTemplate string `json:"label_template,omitempty"`
}

// LoadConfig reads the JSON config at path. A missing file is not an error;
// defaults apply.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	defer f.Close()
	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
