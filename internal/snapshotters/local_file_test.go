package snapshotters_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hankgalt/design-space/internal/snapshotters"
	"github.com/hankgalt/design-space/pkg/domain"
)

func TestLocalFileSnapshotter(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "manifests")

	snap, err := snapshotters.LocalFileSnapshotterConfig{Path: dir}.BuildSnapshotter(ctx)
	require.NoError(t, err)
	defer snap.Close(ctx)
	require.Equal(t, snapshotters.LocalFileSnapshotter, snap.Name())

	m := domain.Manifest{
		JobID:       "enumerate-ba-ti-o",
		Elements:    []string{"Ba", "Ti", "O"},
		NumElements: 2,
		Candidates:  3,
		Formulas:    3,
		Batches:     1,
		CompletedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, snap.Snapshot(ctx, m.JobID, m))

	data, err := os.ReadFile(filepath.Join(dir, m.JobID+".json"))
	require.NoError(t, err)

	var got domain.Manifest
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, m, got)

	require.NoError(t, snap.Snapshot(ctx, "raw", []byte(`{"ok":true}`)))
	data, err = os.ReadFile(filepath.Join(dir, "raw.json"))
	require.NoError(t, err)
	require.Equal(t, "{\"ok\":true}\n", string(data))
}

func TestLocalFileSnapshotter_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := snapshotters.LocalFileSnapshotterConfig{}.BuildSnapshotter(ctx)
	require.ErrorIs(t, err, snapshotters.ErrLocalFilePathRequired)

	snap, err := snapshotters.LocalFileSnapshotterConfig{Path: t.TempDir()}.BuildSnapshotter(ctx)
	require.NoError(t, err)
	require.ErrorIs(t, snap.Snapshot(ctx, "../escape", "x"), snapshotters.ErrLocalFileInvalidKey)
	require.ErrorIs(t, snap.Snapshot(ctx, "", "x"), snapshotters.ErrLocalFileInvalidKey)
}
