package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hankgalt/design-space/internal/cli"
	"github.com/hankgalt/design-space/internal/sinks"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cli.RootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestEnumerateToCSV(t *testing.T) {
	saveFile := filepath.Join(t.TempDir(), "out", "design_space.csv")

	out, err := executeRoot(t, "enumerate", "-e", "Ba,Ti", "-e", "O", "-n", "2", "-s", saveFile)
	require.NoError(t, err)
	require.Equal(t, []string{"BaTi", "BaO", "TiO"}, strings.Fields(out))

	data, err := os.ReadFile(saveFile)
	require.NoError(t, err)
	require.Equal(t, sinks.CSVHeader+"\nBaTi\nBaO\nTiO\n", string(data))
}

func TestEnumerateFromDesignFile(t *testing.T) {
	dir := t.TempDir()
	designFile := filepath.Join(dir, "design.csv")
	require.NoError(t, os.WriteFile(designFile, []byte("Ba, Sr, Ti, O\n"), 0o644))

	out, err := executeRoot(t,
		"enumerate",
		"-d", designFile,
		"-n", "3",
		"--sink", "pif",
		"--pif-file", filepath.Join(dir, "pifs.json"),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"BaSrTi", "BaSrO", "BaTiO", "SrTiO"}, strings.Fields(out))

	systems, err := sinks.ReadPIF(filepath.Join(dir, "pifs.json"))
	require.NoError(t, err)
	require.Len(t, systems, 4)
	require.Equal(t, sinks.PIFChemicalCategory, systems[0].Category)
	require.Equal(t, "BaSrTi", systems[0].ChemicalFormula)
}

func TestEnumerateErrors(t *testing.T) {
	_, err := executeRoot(t, "enumerate", "-n", "2", "--sink", "none")
	require.ErrorIs(t, err, cli.ErrMissingElements)

	_, err = executeRoot(t, "enumerate", "-e", "Ba,O", "-n", "2", "--sink", "parquet")
	require.ErrorIs(t, err, cli.ErrUnknownSink)

	_, err = executeRoot(t, "enumerate", "-e", "Ba,O")
	require.Error(t, err)
}
