package sinks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hankgalt/design-space/pkg/domain"
)

// Error constants and variables shared by sinks
const (
	ERR_SINK_NIL_BATCH = "sink: nil batch"
)

var (
	ErrSinkNilBatch = errors.New(ERR_SINK_NIL_BATCH)
)

// CSVHeader is the single column header of design space CSV files.
const CSVHeader = "Chemical Formula"

// pendingRecords returns the records of b that have data & no prior error.
func pendingRecords(b *domain.BatchProcess[domain.Formula]) []*domain.BatchRecord[domain.Formula] {
	out := make([]*domain.BatchRecord[domain.Formula], 0, len(b.Records))
	for _, rec := range b.Records {
		if rec == nil || rec.BatchResult.Error != "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// markWritten sets the position of every pending record as its result.
func markWritten(recs []*domain.BatchRecord[domain.Formula]) {
	for _, rec := range recs {
		rec.BatchResult.Result = rec.Data.Position
	}
}

// checkCancelled returns the context error, if any, without blocking.
func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// replaceFile writes data to a sibling temp file & renames it over path, so a
// failed write keeps the previous content.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
