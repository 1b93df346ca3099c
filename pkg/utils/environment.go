package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/hankgalt/design-space/pkg/domain"
)

const DEFAULT_DATA_DIR = "data"
const DEFAULT_TEMPORAL_HOST = "localhost:7233"
const DEFAULT_TEMPORAL_NAMESPACE = "default"

// BuildDataDir returns the DATA_DIR env variable or DEFAULT_DATA_DIR.
func BuildDataDir() string {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = DEFAULT_DATA_DIR
	}
	return dataDir
}

// BuildFilePath joins name onto the data directory and checks that the directory exists.
func BuildFilePath(name string) (string, error) {
	dataDir := BuildDataDir()
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		return "", fmt.Errorf("data path does not exist: %s", dataDir)
	}
	return strings.TrimSuffix(dataDir, "/") + "/" + name, nil
}

// BuildTemporalConfig reads the temporal connection settings from
// TEMPORAL_HOST & TEMPORAL_NAMESPACE, falling back to local defaults.
func BuildTemporalConfig() domain.TemporalConfig {
	host := os.Getenv("TEMPORAL_HOST")
	if host == "" {
		host = DEFAULT_TEMPORAL_HOST
	}
	namespace := os.Getenv("TEMPORAL_NAMESPACE")
	if namespace == "" {
		namespace = DEFAULT_TEMPORAL_NAMESPACE
	}
	return domain.TemporalConfig{
		Host:      host,
		Namespace: namespace,
	}
}

// BuildCloudFileConfig builds a cloud file config for path from the BUCKET env variable.
func BuildCloudFileConfig(path string) (domain.CloudFileConfig, error) {
	bucket := os.Getenv("BUCKET")
	if bucket == "" {
		return domain.CloudFileConfig{}, fmt.Errorf("BUCKET environment variable is not set")
	}

	return domain.CloudFileConfig{
		Path:   path,
		Bucket: bucket,
	}, nil
}
