package sources

import (
	"context"
	"errors"
	"os"

	"github.com/comfforts/logger"

	"github.com/hankgalt/design-space/pkg/domain"
)

// Error constants and variables
const (
	ErrMsgLocalCSVPathRequired = "local csv: path is required"
	ErrMsgLocalCSVFileNotFound = "local csv: error opening file"
)

var (
	ErrLocalCSVPathRequired = errors.New(ErrMsgLocalCSVPathRequired)
	ErrLocalCSVFileNotFound = errors.New(ErrMsgLocalCSVFileNotFound)
)

const (
	LocalCSVSource = "local-csv-source"
)

// Local CSV source.
type localCSVSource struct {
	path      string
	delimiter rune
}

// Name of the source.
func (s *localCSVSource) Name() string { return LocalCSVSource }

// Close closes the local CSV source.
func (s *localCSVSource) Close(ctx context.Context) error {
	// No resources to close for local CSV source
	return nil
}

// Elements reads the element symbols from the first row of the file.
func (s *localCSVSource) Elements(ctx context.Context) ([]string, error) {
	l, err := logger.LoggerFromContext(ctx)
	if err != nil {
		l = logger.GetSlogLogger()
	}

	f, err := os.Open(s.path)
	if err != nil {
		l.Error(ErrMsgLocalCSVFileNotFound, "path", s.path, "error", err.Error())
		return nil, ErrLocalCSVFileNotFound
	}
	defer f.Close()

	elements, err := readElementRow(f, s.delimiter)
	if err != nil {
		return nil, err
	}
	l.Debug("local csv: read elements", "path", s.path, "num-elements", len(elements))
	return elements, nil
}

// Local CSV source config.
type LocalCSVConfig struct {
	Path      string
	Delimiter rune // e.g., ',', '|'
}

// Name of the source.
func (c LocalCSVConfig) Name() string { return LocalCSVSource }

// BuildSource builds a local CSV source from the config.
func (c LocalCSVConfig) BuildSource(ctx context.Context) (domain.ElementSource, error) {
	if c.Path == "" {
		return nil, ErrLocalCSVPathRequired
	}

	return &localCSVSource{
		path:      c.Path,
		delimiter: delimiterOrDefault(c.Delimiter),
	}, nil
}
