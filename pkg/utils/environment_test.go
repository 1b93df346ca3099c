package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hankgalt/design-space/pkg/utils"
)

func TestBuildTemporalConfig(t *testing.T) {
	t.Setenv("TEMPORAL_HOST", "")
	t.Setenv("TEMPORAL_NAMESPACE", "")
	cfg := utils.BuildTemporalConfig()
	require.Equal(t, utils.DEFAULT_TEMPORAL_HOST, cfg.Host)
	require.Equal(t, utils.DEFAULT_TEMPORAL_NAMESPACE, cfg.Namespace)

	t.Setenv("TEMPORAL_HOST", "temporal:7233")
	t.Setenv("TEMPORAL_NAMESPACE", "design")
	cfg = utils.BuildTemporalConfig()
	require.Equal(t, "temporal:7233", cfg.Host)
	require.Equal(t, "design", cfg.Namespace)
}

func TestBuildFilePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	p, err := utils.BuildFilePath("design_space.csv")
	require.NoError(t, err)
	require.Equal(t, dir+"/design_space.csv", p)

	t.Setenv("DATA_DIR", dir+"/missing")
	_, err = utils.BuildFilePath("design_space.csv")
	require.Error(t, err)
}

func TestBuildCloudFileConfig(t *testing.T) {
	t.Setenv("BUCKET", "")
	_, err := utils.BuildCloudFileConfig("designs/elements.csv")
	require.Error(t, err)

	t.Setenv("BUCKET", "design-bucket")
	cfg, err := utils.BuildCloudFileConfig("designs/elements.csv")
	require.NoError(t, err)
	require.Equal(t, "design-bucket", cfg.Bucket)
	require.Equal(t, "designs/elements.csv", cfg.Path)
}
