package sinks

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/comfforts/logger"

	"github.com/hankgalt/design-space/pkg/domain"
)

const (
	ERR_LOCAL_CSV_SINK_PATH_REQUIRED = "local csv sink: path is required"
	ERR_LOCAL_CSV_SINK_OPEN          = "local csv sink: error opening file"
)

var (
	ErrLocalCSVSinkPathRequired = errors.New(ERR_LOCAL_CSV_SINK_PATH_REQUIRED)
	ErrLocalCSVSinkOpen         = errors.New(ERR_LOCAL_CSV_SINK_OPEN)
)

const LocalCSVSink = "local-csv-sink"

// Local CSV sink, a single "Chemical Formula" column.
type localCSVSink struct {
	path string
}

// Name of the sink.
func (s *localCSVSink) Name() string { return LocalCSVSink }

// Close closes the local CSV sink.
func (s *localCSVSink) Close(ctx context.Context) error {
	return nil
}

// Write rewrites the file with the rows before the batch offset followed by
// the batch formulas. The batch at offset 0 starts a fresh file with the
// header, so batches must arrive in offset order. Rewriting a batch replaces
// its previous rows.
func (s *localCSVSink) Write(ctx context.Context, b *domain.BatchProcess[domain.Formula]) (*domain.BatchProcess[domain.Formula], error) {
	if b == nil {
		return b, ErrSinkNilBatch
	}
	if err := checkCancelled(ctx); err != nil {
		return b, err
	}

	l, err := logger.LoggerFromContext(ctx)
	if err != nil {
		l = logger.GetSlogLogger()
	}

	rows := [][]string{{CSVHeader}}
	if b.StartOffset > 0 {
		rows, err = s.readRows(b.StartOffset)
		if err != nil {
			l.Error(ERR_LOCAL_CSV_SINK_OPEN, "path", s.path, "error", err.Error())
			return b, err
		}
	}

	recs := pendingRecords(b)
	for _, rec := range recs {
		rows = append(rows, []string{rec.Data.Formula})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return b, fmt.Errorf("local csv sink: write records: %w", err)
	}
	if err := replaceFile(s.path, buf.Bytes()); err != nil {
		return b, fmt.Errorf("local csv sink: %w", err)
	}

	markWritten(recs)
	b.Done = true
	l.Debug("local csv sink: batch written", "path", s.path, "start", b.StartOffset, "records", len(recs))
	return b, nil
}

// readRows returns the header & at most offset formula rows of the file.
func (s *localCSVSink) readRows(offset uint64) ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocalCSVSinkOpen, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocalCSVSinkOpen, err)
	}
	if len(rows) == 0 {
		rows = [][]string{{CSVHeader}}
	}
	if uint64(len(rows)) > offset+1 {
		rows = rows[:offset+1]
	}
	return rows, nil
}

// Local CSV sink config.
type LocalCSVSinkConfig struct {
	Path string
}

// Name of the sink.
func (c LocalCSVSinkConfig) Name() string { return LocalCSVSink }

// Ordered reports that batches must be written sequentially.
func (c LocalCSVSinkConfig) Ordered() bool { return true }

// BuildSink builds a local CSV sink from the config, creating the parent directory.
func (c LocalCSVSinkConfig) BuildSink(ctx context.Context) (domain.Sink[domain.Formula], error) {
	if c.Path == "" {
		return nil, ErrLocalCSVSinkPathRequired
	}
	if dir := filepath.Dir(c.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("local csv sink: create dir: %w", err)
		}
	}
	return &localCSVSink{path: c.Path}, nil
}
