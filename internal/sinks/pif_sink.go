package sinks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/comfforts/logger"

	"github.com/hankgalt/design-space/pkg/domain"
)

const (
	ERR_PIF_SINK_PATH_REQUIRED = "pif sink: path is required"
	ERR_PIF_SINK_READ          = "pif sink: error reading existing systems"
)

var (
	ErrPIFSinkPathRequired = errors.New(ERR_PIF_SINK_PATH_REQUIRED)
	ErrPIFSinkRead         = errors.New(ERR_PIF_SINK_READ)
)

const (
	PIFSink = "pif-sink"
	// PIFChemicalCategory is the category of every emitted system.
	PIFChemicalCategory = "system.chemical"
)

// ChemicalSystem is a minimal Physical Information File chemical system.
type ChemicalSystem struct {
	Category        string `json:"category"`
	ChemicalFormula string `json:"chemicalFormula"`
}

// PIF sink, a JSON array of chemical systems.
type pifSink struct {
	path string
}

// Name of the sink.
func (s *pifSink) Name() string { return PIFSink }

// Close closes the PIF sink.
func (s *pifSink) Close(ctx context.Context) error {
	return nil
}

// Write merges the batch into the JSON array at path, after the systems
// before its offset. The batch at offset 0 starts a fresh array; batches must
// arrive in offset order.
func (s *pifSink) Write(ctx context.Context, b *domain.BatchProcess[domain.Formula]) (*domain.BatchProcess[domain.Formula], error) {
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

	systems := []ChemicalSystem{}
	if b.StartOffset > 0 {
		systems, err = ReadPIF(s.path)
		if err != nil {
			return b, err
		}
		if uint64(len(systems)) > b.StartOffset {
			systems = systems[:b.StartOffset]
		}
	}

	recs := pendingRecords(b)
	for _, rec := range recs {
		systems = append(systems, ChemicalSystem{
			Category:        PIFChemicalCategory,
			ChemicalFormula: rec.Data.Formula,
		})
	}

	data, err := json.MarshalIndent(systems, "", "  ")
	if err != nil {
		return b, fmt.Errorf("pif sink: marshal: %w", err)
	}

	if err := replaceFile(s.path, append(data, '\n')); err != nil {
		return b, fmt.Errorf("pif sink: %w", err)
	}

	markWritten(recs)
	b.Done = true
	l.Debug("pif sink: batch written", "path", s.path, "start", b.StartOffset, "systems", len(systems))
	return b, nil
}

// ReadPIF decodes the chemical systems stored at path.
func ReadPIF(path string) ([]ChemicalSystem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPIFSinkRead, err)
	}
	systems := []ChemicalSystem{}
	if err := json.Unmarshal(data, &systems); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPIFSinkRead, err)
	}
	return systems, nil
}

// PIF sink config.
type PIFSinkConfig struct {
	Path string
}

// Name of the sink.
func (c PIFSinkConfig) Name() string { return PIFSink }

// Ordered reports that batches must be written sequentially.
func (c PIFSinkConfig) Ordered() bool { return true }

// BuildSink builds a PIF sink from the config, creating the parent directory.
func (c PIFSinkConfig) BuildSink(ctx context.Context) (domain.Sink[domain.Formula], error) {
	if c.Path == "" {
		return nil, ErrPIFSinkPathRequired
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return nil, fmt.Errorf("pif sink: create dir: %w", err)
	}
	return &pifSink{path: c.Path}, nil
}
