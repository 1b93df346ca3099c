package domain

import (
	"context"
	"time"
)

// Formula is a single entry of an enumerated design space.
type Formula struct {
	Position uint64   // 0-based position in the result set
	Formula  string   // reduced formula, e.g. "BaTiO3"
	Elements []string // element symbols in rendering order
}

type BatchResult struct {
	Result any
	Error  string
}

type BatchRecord[T any] struct {
	Data        T
	Start, End  uint64
	BatchResult BatchResult
	Done        bool
}

// BatchProcess[T any] is the neutral "batch process" unit handed to sinks.
type BatchProcess[T any] struct {
	BatchId     string
	Records     []*BatchRecord[T]
	StartOffset uint64 // position of the first record in the result set
	NextOffset  uint64 // position after the last record
	Error       map[string]int
	Done        bool
}

// ElementSourceConfig is a config that *knows how to build* an ElementSource.
type ElementSourceConfig interface {
	BuildSource(ctx context.Context) (ElementSource, error)
	Name() string
}

// ElementSource provides the element symbols a design space is built from,
// e.g., an inline list, a local CSV file or a cloud CSV object.
type ElementSource interface {
	Elements(ctx context.Context) ([]string, error)
	Name() string
	Close(context.Context) error
}

// SinkConfig[T any] is a config that *knows how to build* a Sink for a specific T.
type SinkConfig[T any] interface {
	BuildSink(ctx context.Context) (Sink[T], error)
	Name() string
}

// OrderedSinkConfig is implemented by sink configs whose batches must be
// written one at a time, in offset order (e.g., append-only files).
type OrderedSinkConfig interface {
	Ordered() bool
}

// Sink[T any] writes a batch of T to a destination, e.g., a database, a file, etc.
// Returns the batch with per-record results.
type Sink[T any] interface {
	Write(ctx context.Context, b *BatchProcess[T]) (*BatchProcess[T], error)
	Name() string
	Close(context.Context) error
}

// SnapshotterConfig is a config that *knows how to build* a Snapshotter.
type SnapshotterConfig interface {
	BuildSnapshotter(ctx context.Context) (Snapshotter, error)
	Name() string
}

// Snapshotter persists a keyed snapshot of run state.
type Snapshotter interface {
	Snapshot(ctx context.Context, key string, snapshot any) error
	Name() string
	Close(context.Context) error
}

// FetchElementsInput[S ElementSourceConfig] is the input for the FetchElementsActivity.
type FetchElementsInput[S ElementSourceConfig] struct {
	Source S
}

// FetchElementsOutput is the output for the FetchElementsActivity.
type FetchElementsOutput struct {
	Elements []string
}

// EnumerateInput is the input for the EnumerateFormulasActivity.
type EnumerateInput struct {
	Elements    []string
	NumElements int
	Order       string
}

// EnumerateOutput is the output for the EnumerateFormulasActivity.
type EnumerateOutput struct {
	Formulas   []Formula
	Candidates uint64 // number of generated candidates before screening
}

// WriteInput[D SinkConfig[Formula]] is the input for the WriteActivity.
type WriteInput[D SinkConfig[Formula]] struct {
	Sink  D
	Batch *BatchProcess[Formula]
}

// WriteOutput is the output for the WriteActivity.
type WriteOutput struct {
	Batch *BatchProcess[Formula]
}

// Manifest summarizes a completed enumeration run.
type Manifest struct {
	JobID       string
	Source      string
	Sink        string
	Elements    []string
	NumElements int
	Order       string
	Candidates  uint64
	Formulas    uint64
	Batches     int
	Errors      int
	CompletedAt time.Time
}

// ManifestInput is the input for the WriteManifestActivity.
type ManifestInput struct {
	Dir      string
	Manifest Manifest
}

// EnumerationRequest[S ElementSourceConfig, D SinkConfig[Formula]] is a request to
// enumerate the design space of elements from source S and write the formulas to sink D.
type EnumerationRequest[S ElementSourceConfig, D SinkConfig[Formula]] struct {
	JobID               string                            // unique identifier for the job
	NumElements         int                               // arity, number of elements per formula
	Order               string                            // formula element ordering
	BatchSize           uint                              // maximum number of formulas per sink batch
	MaxInProcessBatches uint                              // maximum number of concurrent sink writes
	Source              S                                 // source configuration
	Sink                D                                 // sink configuration
	ManifestDir         string                            // if set, a run manifest is written here
	Elements            []string                          // elements fetched from the source
	Candidates          uint64                            // number of generated candidates
	Formulas            uint64                            // number of unique formulas
	Offsets             []uint64                          // list of offsets for each batch
	Batches             map[string]*BatchProcess[Formula] // map of batch by ID
	Done                bool                              // whether the job is done
}

type CloudFileConfig struct {
	Path   string
	Bucket string
}

type TemporalConfig struct {
	Host      string
	Namespace string
}
