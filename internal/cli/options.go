package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hankgalt/design-space/internal/sinks"
	"github.com/hankgalt/design-space/internal/sources"
	"github.com/hankgalt/design-space/pkg/domain"
	"github.com/hankgalt/design-space/pkg/utils"
)

const (
	ERR_MISSING_ELEMENTS = "cli: either --elements or --design-file is required"
	ERR_UNKNOWN_SOURCE   = "cli: unknown source"
	ERR_UNKNOWN_SINK     = "cli: unknown sink"
)

var (
	ErrMissingElements = errors.New(ERR_MISSING_ELEMENTS)
	ErrUnknownSource   = errors.New(ERR_UNKNOWN_SOURCE)
	ErrUnknownSink     = errors.New(ERR_UNKNOWN_SINK)
)

// Source & sink flag values.
const (
	SourceList = "list"
	SourceCSV  = "csv"
	SourceGCS  = "gcs"

	SinkCSV    = "csv"
	SinkSQLite = "sqlite"
	SinkPIF    = "pif"
	SinkGCS    = "gcs"
	SinkNone   = "none"
)

const (
	DefaultSaveFile = "design_space.csv"
	DefaultPIFFile  = "pifs.json"
	DefaultDBFile   = "design_space.db"
)

// designOptions are the flags shared by enumerate & start.
type designOptions struct {
	elements    []string
	numElements int
	designFile  string
	order       string
	sink        string
	saveFile    string
	pifFile     string
	dbFile      string
	table       string
}

func (o *designOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVarP(&o.elements, "elements", "e", nil, "elements to enumerate, e.g. -e Ba,Ti -e O")
	f.IntVarP(&o.numElements, "num-elements", "n", 0, "number of elements in each formula")
	f.StringVarP(&o.designFile, "design-file", "d", "", "CSV file whose first row lists the elements")
	f.StringVar(&o.order, "order", "electronegativity", "element order in formulas: electronegativity|alphabetical")
	f.StringVar(&o.sink, "sink", SinkCSV, "where to write formulas: csv|sqlite|pif|none")
	f.StringVarP(&o.saveFile, "save-file", "s", DefaultSaveFile, "CSV file to save the design space to")
	f.StringVar(&o.pifFile, "pif-file", DefaultPIFFile, "JSON file to save PIF chemical systems to")
	f.StringVar(&o.dbFile, "db-file", DefaultDBFile, "SQLite database file")
	f.StringVar(&o.table, "table", sinks.DefaultFormulaTable, "SQLite table")
	_ = cmd.MarkFlagRequired("num-elements")
}

// resolvePaths places relative file flags under DATA_DIR when it is set.
func (o *designOptions) resolvePaths() error {
	if os.Getenv("DATA_DIR") == "" {
		return nil
	}
	for _, p := range []*string{&o.designFile, &o.saveFile, &o.pifFile, &o.dbFile} {
		if *p == "" || filepath.IsAbs(*p) {
			continue
		}
		resolved, err := utils.BuildFilePath(*p)
		if err != nil {
			return err
		}
		*p = resolved
	}
	return nil
}

// sourceConfig returns the design file source when set, else the element list.
func (o *designOptions) sourceConfig() (domain.ElementSourceConfig, error) {
	if o.designFile != "" {
		return sources.LocalCSVConfig{Path: o.designFile}, nil
	}
	if len(o.elements) == 0 {
		return nil, ErrMissingElements
	}
	return sources.ElementListConfig{Elements: o.elements}, nil
}

// localSinkConfig returns the config of a sink writing to the local machine.
func (o *designOptions) localSinkConfig() (domain.SinkConfig[domain.Formula], error) {
	switch strings.ToLower(o.sink) {
	case SinkCSV:
		return sinks.LocalCSVSinkConfig{Path: o.saveFile}, nil
	case SinkSQLite:
		return sinks.SQLLiteSinkConfig{DBFile: o.dbFile, Table: o.table}, nil
	case SinkPIF:
		return sinks.PIFSinkConfig{Path: o.pifFile}, nil
	case SinkNone:
		return sinks.NoopSinkConfig[domain.Formula]{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSink, o.sink)
}
