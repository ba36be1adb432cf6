// Package blob stores emitted artifacts (DOT text, rendered images) behind
// a pluggable store interface.
package blob

import (
	"context"

	"github.com/awantoch/procmap/constants"
	"github.com/awantoch/procmap/utils"
)

// Store is the interface for pluggable artifact storage backends.
type Store interface {
	Put(ctx context.Context, data []byte, mime, filename string) (url string, err error)
	Get(ctx context.Context, url string) ([]byte, error)
}

// Config is a minimal struct for artifact store configuration.
type Config struct {
	Driver    string
	Directory string
	Bucket    string
	Region    string
}

// New returns a Store based on config; nil or empty config means the
// filesystem store in the default artifact directory.
func New(ctx context.Context, cfg *Config) (Store, error) {
	if cfg == nil || cfg.Driver == "" || cfg.Driver == constants.BlobDriverFilesystem {
		dir := constants.DefaultArtifactDir
		if cfg != nil && cfg.Directory != "" {
			dir = cfg.Directory
		}
		return NewFilesystemStore(dir)
	}
	if cfg.Driver == constants.BlobDriverS3 {
		return NewS3Store(ctx, cfg.Bucket, cfg.Region)
	}
	return nil, utils.Errorf("unsupported blob driver: %s", cfg.Driver)
}
