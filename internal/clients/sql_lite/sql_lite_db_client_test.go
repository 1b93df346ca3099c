package sqllite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sqllite "github.com/hankgalt/design-space/internal/clients/sql_lite"
)

func TestSQLLiteDBClient(t *testing.T) {
	ctx := context.Background()
	dbFile := filepath.Join(t.TempDir(), "design_space.db")
	dbClient, err := sqllite.NewSQLLiteDBClient(dbFile)
	require.NoError(t, err)

	defer func() {
		require.NoError(t, dbClient.Close(ctx))
	}()

	require.NoError(t, dbClient.EnsureTable(ctx, "design_space"))
	// idempotent
	require.NoError(t, dbClient.EnsureTable(ctx, "design_space"))

	formulas := []string{"BaTi", "BaO", "TiO"}
	for i, f := range formulas {
		res, err := dbClient.InsertFormula(ctx, "design_space", sqllite.FormulaRow{
			Position:    int64(i),
			Formula:     f,
			Elements:    "Ba,Ti",
			NumElements: 2,
		})
		require.NoError(t, err)

		n, err := res.RowsAffected()
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	}

	_, err = dbClient.InsertFormula(ctx, "design_space", sqllite.FormulaRow{Position: 9, Formula: "BaO"})
	require.Error(t, err, "formula must be unique")

	// replaying a position rewrites it
	_, err = dbClient.InsertFormula(ctx, "design_space", sqllite.FormulaRow{Position: 1, Formula: "BaO", Elements: "Ba,O", NumElements: 2})
	require.NoError(t, err)

	rows, err := dbClient.FetchFormulas(ctx, "design_space", 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, r := range rows {
		require.EqualValues(t, i, r.Position)
		require.Equal(t, formulas[i], r.Formula)
		require.NotEmpty(t, r.CreatedAt)
	}

	rows, err = dbClient.FetchFormulas(ctx, "design_space", 1, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "BaO", rows[0].Formula)

	n, err := dbClient.CountFormulas(ctx, "design_space")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	res, err := dbClient.ClearFormulas(ctx, "design_space")
	require.NoError(t, err)
	cleared, err := res.RowsAffected()
	require.NoError(t, err)
	require.EqualValues(t, 3, cleared)

	n, err = dbClient.CountFormulas(ctx, "design_space")
	require.NoError(t, err)
	require.Equal(t, 0, n)

	// custom schema
	_, err = dbClient.ExecuteSchema(ctx, sqllite.DesignSpaceSchema("design_space_ternary"))
	require.NoError(t, err)
	_, err = dbClient.InsertFormula(ctx, "design_space_ternary", sqllite.FormulaRow{Position: 0, Formula: "BaTiO"})
	require.NoError(t, err)
}

func TestSQLLiteDBClient_InvalidTable(t *testing.T) {
	ctx := context.Background()
	dbClient, err := sqllite.NewSQLLiteDBClient(filepath.Join(t.TempDir(), "bad.db"))
	require.NoError(t, err)
	defer dbClient.Close(ctx)

	require.ErrorIs(t, dbClient.EnsureTable(ctx, "drop table x;"), sqllite.ErrSqlLiteInvalidTable)
	_, err = dbClient.FetchFormulas(ctx, "1abc", 0, 1)
	require.ErrorIs(t, err, sqllite.ErrSqlLiteInvalidTable)
	_, err = dbClient.ClearFormulas(ctx, "x; drop")
	require.ErrorIs(t, err, sqllite.ErrSqlLiteInvalidTable)
}
