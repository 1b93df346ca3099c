package snapshotters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/hankgalt/design-space/pkg/domain"
)

const (
	ERR_LOCAL_FILE_PATH_REQUIRED = "local file snapshotter: path is required"
	ERR_LOCAL_FILE_INVALID_KEY   = "local file snapshotter: invalid key"
)

var (
	ErrLocalFilePathRequired = errors.New(ERR_LOCAL_FILE_PATH_REQUIRED)
	ErrLocalFileInvalidKey   = errors.New(ERR_LOCAL_FILE_INVALID_KEY)
)

const LocalFileSnapshotter = "local-file-snapshotter"

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

type localFileSnapshotter struct {
	path string
}

// Name of the snapshotter.
func (s localFileSnapshotter) Name() string { return LocalFileSnapshotter }

// Close closes the local file snapshotter.
func (s localFileSnapshotter) Close(ctx context.Context) error {
	// No resources to close for local file snapshotter
	return nil
}

// Snapshot writes snapshot to <path>/<key>.json. Raw bytes are written as is,
// anything else is JSON encoded.
func (s localFileSnapshotter) Snapshot(ctx context.Context, key string, snapshot any) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrLocalFileInvalidKey, key)
	}

	var data []byte
	switch v := snapshot.(type) {
	case []byte:
		data = v
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("local file snapshotter: marshal %s: %w", key, err)
		}
		data = b
	}

	if err := os.MkdirAll(s.path, 0o755); err != nil {
		return fmt.Errorf("local file snapshotter: create dir: %w", err)
	}

	fp := filepath.Join(s.path, key+".json")
	return os.WriteFile(fp, append(data, '\n'), 0o644)
}

type LocalFileSnapshotterConfig struct {
	Path string
}

// Name of the snapshotter.
func (s LocalFileSnapshotterConfig) Name() string { return LocalFileSnapshotter }

func (s LocalFileSnapshotterConfig) BuildSnapshotter(ctx context.Context) (domain.Snapshotter, error) {
	if s.Path == "" {
		return nil, ErrLocalFilePathRequired
	}
	return &localFileSnapshotter{
		path: s.Path,
	}, nil
}
