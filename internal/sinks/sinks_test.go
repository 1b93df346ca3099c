package sinks_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/comfforts/logger"
	"github.com/stretchr/testify/require"

	sqllite "github.com/hankgalt/design-space/internal/clients/sql_lite"
	"github.com/hankgalt/design-space/internal/sinks"
	"github.com/hankgalt/design-space/pkg/domain"
)

// buildBatch builds a batch of formulas positioned from start.
func buildBatch(start uint64, formulas ...string) *domain.BatchProcess[domain.Formula] {
	b := &domain.BatchProcess[domain.Formula]{
		StartOffset: start,
		NextOffset:  start + uint64(len(formulas)),
	}
	for i, f := range formulas {
		pos := start + uint64(i)
		b.Records = append(b.Records, &domain.BatchRecord[domain.Formula]{
			Data:  domain.Formula{Position: pos, Formula: f, Elements: []string{"Ba", "O"}},
			Start: pos,
			End:   pos + 1,
		})
	}
	return b
}

func testContext() context.Context {
	return logger.WithLogger(context.Background(), logger.GetSlogLogger())
}

func TestNoopSink(t *testing.T) {
	ctx := testContext()
	sink, err := sinks.NoopSinkConfig[domain.Formula]{}.BuildSink(ctx)
	require.NoError(t, err)
	require.Equal(t, sinks.NoopSink, sink.Name())

	b, err := sink.Write(ctx, buildBatch(0, "BaO"))
	require.NoError(t, err)
	require.True(t, b.Done)
	require.Equal(t, domain.Formula{Position: 0, Formula: "BaO", Elements: []string{"Ba", "O"}}, b.Records[0].BatchResult.Result)
	require.NoError(t, sink.Close(ctx))
}

func TestLocalCSVSink(t *testing.T) {
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "out", "design_space.csv")

	cfg := sinks.LocalCSVSinkConfig{Path: path}
	require.True(t, cfg.Ordered())

	sink, err := cfg.BuildSink(ctx)
	require.NoError(t, err)
	defer sink.Close(ctx)

	b, err := sink.Write(ctx, buildBatch(0, "BaTi", "BaO"))
	require.NoError(t, err)
	require.True(t, b.Done)
	require.EqualValues(t, 1, b.Records[1].BatchResult.Result)

	_, err = sink.Write(ctx, buildBatch(2, "TiO"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Chemical Formula\nBaTi\nBaO\nTiO\n", string(data))

	// a new run from offset 0 truncates
	_, err = sink.Write(ctx, buildBatch(0, "BaO"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Chemical Formula\nBaO\n", string(data))
}

func TestOrderedFileSinks_RewriteRetriedBatch(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "design_space.csv")
	pifPath := filepath.Join(dir, "pifs.json")

	for _, cfg := range []domain.SinkConfig[domain.Formula]{
		sinks.LocalCSVSinkConfig{Path: csvPath},
		sinks.PIFSinkConfig{Path: pifPath},
	} {
		sink, err := cfg.BuildSink(ctx)
		require.NoError(t, err)

		_, err = sink.Write(ctx, buildBatch(0, "BaTi"))
		require.NoError(t, err)
		_, err = sink.Write(ctx, buildBatch(1, "BaO", "TiO"))
		require.NoError(t, err)
		// the same batch again, e.g. an activity retry
		_, err = sink.Write(ctx, buildBatch(1, "BaO", "TiO"))
		require.NoError(t, err)
		require.NoError(t, sink.Close(ctx))
	}

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	require.Equal(t, "Chemical Formula\nBaTi\nBaO\nTiO\n", string(data))

	systems, err := sinks.ReadPIF(pifPath)
	require.NoError(t, err)
	require.Len(t, systems, 3)
	for i, f := range []string{"BaTi", "BaO", "TiO"} {
		require.Equal(t, f, systems[i].ChemicalFormula)
	}

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestLocalCSVSink_MissingPrevious(t *testing.T) {
	ctx := testContext()
	sink, err := sinks.LocalCSVSinkConfig{Path: filepath.Join(t.TempDir(), "design_space.csv")}.BuildSink(ctx)
	require.NoError(t, err)

	_, err = sink.Write(ctx, buildBatch(3, "BaO"))
	require.ErrorIs(t, err, sinks.ErrLocalCSVSinkOpen)
}

func TestLocalCSVSink_SkipsErroredRecords(t *testing.T) {
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "design_space.csv")
	sink, err := sinks.LocalCSVSinkConfig{Path: path}.BuildSink(ctx)
	require.NoError(t, err)

	b := buildBatch(0, "BaTi", "BaO")
	b.Records[0].BatchResult.Error = "upstream failure"
	_, err = sink.Write(ctx, b)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Chemical Formula\nBaO\n", string(data))

	_, err = sinks.LocalCSVSinkConfig{}.BuildSink(ctx)
	require.ErrorIs(t, err, sinks.ErrLocalCSVSinkPathRequired)
}

func TestPIFSink(t *testing.T) {
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "design_space.json")

	cfg := sinks.PIFSinkConfig{Path: path}
	require.True(t, cfg.Ordered())
	sink, err := cfg.BuildSink(ctx)
	require.NoError(t, err)
	defer sink.Close(ctx)

	_, err = sink.Write(ctx, buildBatch(0, "BaTi", "BaO"))
	require.NoError(t, err)
	_, err = sink.Write(ctx, buildBatch(2, "TiO"))
	require.NoError(t, err)

	systems, err := sinks.ReadPIF(path)
	require.NoError(t, err)
	require.Len(t, systems, 3)
	for i, f := range []string{"BaTi", "BaO", "TiO"} {
		require.Equal(t, sinks.PIFChemicalCategory, systems[i].Category)
		require.Equal(t, f, systems[i].ChemicalFormula)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `"chemicalFormula": "BaTi"`))

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = sinks.PIFSinkConfig{Path: filepath.Join(t.TempDir(), "x.json")}.BuildSink(ctx)
	require.NoError(t, err)
}

func TestPIFSink_MissingPrevious(t *testing.T) {
	ctx := testContext()
	sink, err := sinks.PIFSinkConfig{Path: filepath.Join(t.TempDir(), "design_space.json")}.BuildSink(ctx)
	require.NoError(t, err)

	_, err = sink.Write(ctx, buildBatch(5, "BaO"))
	require.ErrorIs(t, err, sinks.ErrPIFSinkRead)
}

func TestSQLLiteSink(t *testing.T) {
	ctx := testContext()
	dbFile := filepath.Join(t.TempDir(), "design_space.db")

	sink, err := sinks.SQLLiteSinkConfig{DBFile: dbFile}.BuildSink(ctx)
	require.NoError(t, err)
	require.Equal(t, sinks.SQLLiteSink, sink.Name())

	b, err := sink.Write(ctx, buildBatch(0, "BaTi", "BaO"))
	require.NoError(t, err)
	require.True(t, b.Done)
	require.Empty(t, b.Error)

	// replayed batches are idempotent
	b, err = sink.Write(ctx, buildBatch(1, "BaO", "TiO"))
	require.NoError(t, err)
	require.Empty(t, b.Error)

	// a formula stored at another position fails alone
	b, err = sink.Write(ctx, buildBatch(3, "BaO", "SrO"))
	require.NoError(t, err)
	require.NotEmpty(t, b.Records[0].BatchResult.Error)
	require.Empty(t, b.Records[1].BatchResult.Error)
	require.Len(t, b.Error, 1)

	// every record failing fails the write
	_, err = sink.Write(ctx, buildBatch(7, "BaTi"))
	require.ErrorIs(t, err, sinks.ErrSQLLiteSinkAllBatchRecords)
	require.NoError(t, sink.Close(ctx))

	dbClient, err := sqllite.NewSQLLiteDBClient(dbFile)
	require.NoError(t, err)
	defer dbClient.Close(ctx)

	rows, err := dbClient.FetchFormulas(ctx, sinks.DefaultFormulaTable, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	positions := []int64{0, 1, 2, 4}
	for i, f := range []string{"BaTi", "BaO", "TiO", "SrO"} {
		require.Equal(t, positions[i], rows[i].Position)
		require.Equal(t, f, rows[i].Formula)
		require.Equal(t, "Ba,O", rows[i].Elements)
		require.Equal(t, 2, rows[i].NumElements)
	}
}

func TestSQLLiteSink_ReusedDBFile(t *testing.T) {
	ctx := testContext()
	dbFile := filepath.Join(t.TempDir(), "design_space.db")

	cfg := sinks.SQLLiteSinkConfig{DBFile: dbFile}
	require.True(t, cfg.Ordered())

	runs := [][]string{
		{"BaTi", "BaO", "TiO"},
		{"BaO"},
	}
	for _, formulas := range runs {
		sink, err := cfg.BuildSink(ctx)
		require.NoError(t, err)
		b, err := sink.Write(ctx, buildBatch(0, formulas...))
		require.NoError(t, err)
		require.Empty(t, b.Error)
		require.NoError(t, sink.Close(ctx))
	}

	dbClient, err := sqllite.NewSQLLiteDBClient(dbFile)
	require.NoError(t, err)
	defer dbClient.Close(ctx)

	rows, err := dbClient.FetchFormulas(ctx, sinks.DefaultFormulaTable, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.EqualValues(t, 0, rows[0].Position)
	require.Equal(t, "BaO", rows[0].Formula)
}

func TestSQLLiteSink_Config(t *testing.T) {
	ctx := testContext()

	_, err := sinks.SQLLiteSinkConfig{}.BuildSink(ctx)
	require.ErrorIs(t, err, sinks.ErrSQLLiteSinkDBFileRequired)

	_, err = sinks.SQLLiteSinkConfig{DBFile: filepath.Join(t.TempDir(), "x.db"), Table: "bad table"}.BuildSink(ctx)
	require.ErrorIs(t, err, sqllite.ErrSqlLiteInvalidTable)
}

func TestPartObjectName(t *testing.T) {
	require.Equal(t, "design-space/BaTiO/part-500.csv", sinks.PartObjectName("design-space/BaTiO", 500))
	require.Equal(t, "part-0.csv", sinks.PartObjectName("", 0))

	_, err := sinks.CloudCSVSinkConfig{}.BuildSink(context.Background())
	require.ErrorIs(t, err, sinks.ErrCloudCSVSinkBucketRequired)
}
