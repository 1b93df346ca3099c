package design_space

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	sqllite "github.com/hankgalt/design-space/internal/clients/sql_lite"
	"github.com/hankgalt/design-space/internal/sinks"
	"github.com/hankgalt/design-space/internal/snapshotters"
	"github.com/hankgalt/design-space/internal/sources"
	"github.com/hankgalt/design-space/pkg/domain"
	"github.com/hankgalt/design-space/pkg/formula"
)

// Error messages used throughout the activities
const (
	ERR_MISSING_SOURCE      = "error missing element source"
	ERR_MISSING_SINK        = "error missing formula sink"
	ERR_MISSING_BATCH       = "error missing batch"
	ERR_BUILDING_SOURCE     = "error building element source"
	ERR_FETCHING_ELEMENTS   = "error fetching elements"
	ERR_ENUMERATING         = "error enumerating formulas"
	ERR_BUILDING_SINK       = "error building formula sink"
	ERR_WRITING_BATCH       = "error writing batch"
	ERR_WRITING_MANIFEST    = "error writing manifest"
	ERR_MISSING_MANIFEST_ID = "error missing manifest job id"
)

// Standard Go errors for internal use
var (
	ErrMissingSource     = errors.New(ERR_MISSING_SOURCE)
	ErrMissingSink       = errors.New(ERR_MISSING_SINK)
	ErrMissingBatch      = errors.New(ERR_MISSING_BATCH)
	ErrMissingManifestID = errors.New(ERR_MISSING_MANIFEST_ID)
)

// Temporal application errors for workflow activities
var (
	ErrorMissingSource     = temporal.NewNonRetryableApplicationError(ERR_MISSING_SOURCE, ERR_MISSING_SOURCE, ErrMissingSource)
	ErrorMissingSink       = temporal.NewNonRetryableApplicationError(ERR_MISSING_SINK, ERR_MISSING_SINK, ErrMissingSink)
	ErrorMissingBatch      = temporal.NewNonRetryableApplicationError(ERR_MISSING_BATCH, ERR_MISSING_BATCH, ErrMissingBatch)
	ErrorMissingManifestID = temporal.NewNonRetryableApplicationError(ERR_MISSING_MANIFEST_ID, ERR_MISSING_MANIFEST_ID, ErrMissingManifestID)
)

// Configuration errors retrying cannot fix. Their messages are the
// application error types.
var (
	sourceConfigErrors = []error{
		sources.ErrElementListEmpty,
		sources.ErrLocalCSVPathRequired,
		sources.ErrLocalCSVFileNotFound,
		sources.ErrCSVEmpty,
		sources.ErrCloudCSVObjectPathRequired,
		sources.ErrCloudCSVBucketRequired,
		sources.ErrCloudCSVObjectNotExist,
	}
	enumerationErrors = []error{
		formula.ErrInvalidInput,
		formula.ErrInvalidArity,
		formula.ErrParse,
		formula.ErrInvalidOrder,
	}
	sinkConfigErrors = []error{
		sinks.ErrLocalCSVSinkPathRequired,
		sinks.ErrSQLLiteSinkDBFileRequired,
		sinks.ErrSQLLiteSinkAllBatchRecords,
		sinks.ErrPIFSinkPathRequired,
		sinks.ErrCloudCSVSinkBucketRequired,
		sinks.ErrSinkNilBatch,
		sqllite.ErrSqlLiteInvalidTable,
	}
)

// errorTypes returns the messages of errs, used as non-retryable error types.
func errorTypes(errs ...[]error) []string {
	types := []string{}
	for _, group := range errs {
		for _, err := range group {
			types = append(types, err.Error())
		}
	}
	return types
}

// applicationError converts err to a temporal application error. Errors
// matching one of known are non-retryable & typed by the sentinel message.
func applicationError(fallback string, err error, known []error) error {
	for _, k := range known {
		if errors.Is(err, k) {
			return temporal.NewNonRetryableApplicationError(err.Error(), k.Error(), err)
		}
	}
	return temporal.NewApplicationErrorWithCause(fallback, fallback, err)
}

// FetchElementsActivity builds the element source & returns its elements.
func FetchElementsActivity[S domain.ElementSourceConfig](
	ctx context.Context,
	in *domain.FetchElementsInput[S],
) (*domain.FetchElementsOutput, error) {
	l := activity.GetLogger(ctx)

	if in == nil {
		l.Error(ERR_MISSING_SOURCE)
		return nil, ErrorMissingSource
	}

	src, err := in.Source.BuildSource(ctx)
	if err != nil {
		l.Error(ERR_BUILDING_SOURCE, "source", in.Source.Name(), "error", err.Error())
		return nil, applicationError(ERR_BUILDING_SOURCE, err, sourceConfigErrors)
	}
	defer func() {
		if err := src.Close(ctx); err != nil {
			l.Error("FetchElementsActivity - error closing source", "source", src.Name(), "error", err.Error())
		}
	}()

	elements, err := src.Elements(ctx)
	if err != nil {
		l.Error(ERR_FETCHING_ELEMENTS, "source", src.Name(), "error", err.Error())
		return nil, applicationError(ERR_FETCHING_ELEMENTS, err, sourceConfigErrors)
	}

	l.Debug("FetchElementsActivity - done", "source", src.Name(), "num-elements", len(elements))
	return &domain.FetchElementsOutput{Elements: elements}, nil
}

// EnumerateFormulasActivity enumerates the unique reduced formulas of every
// NumElements-combination of the input elements, in first-seen order.
func EnumerateFormulasActivity(ctx context.Context, in *domain.EnumerateInput) (*domain.EnumerateOutput, error) {
	l := activity.GetLogger(ctx)

	if in == nil {
		return nil, temporal.NewNonRetryableApplicationError(formula.ERR_INVALID_INPUT, formula.ERR_INVALID_INPUT, formula.ErrInvalidInput)
	}

	order, err := formula.ParseOrder(in.Order)
	if err != nil {
		l.Error(ERR_ENUMERATING, "order", in.Order, "error", err.Error())
		return nil, applicationError(ERR_ENUMERATING, err, enumerationErrors)
	}

	comps, err := formula.NewEnumerator(formula.WithOrder(order)).EnumerateCompositions(in.Elements, in.NumElements)
	if err != nil {
		l.Error(ERR_ENUMERATING, "num-elements", in.NumElements, "error", err.Error())
		return nil, applicationError(ERR_ENUMERATING, err, enumerationErrors)
	}

	out := &domain.EnumerateOutput{
		Formulas:   make([]domain.Formula, len(comps)),
		Candidates: formula.Binomial(len(in.Elements), in.NumElements),
	}
	for i, c := range comps {
		out.Formulas[i] = domain.Formula{
			Position: uint64(i),
			Formula:  c.Formula(),
			Elements: c.Elements(),
		}
	}

	l.Debug(
		"EnumerateFormulasActivity - done",
		"num-elements", in.NumElements,
		"candidates", out.Candidates,
		"formulas", len(out.Formulas),
	)
	return out, nil
}

// WriteActivity builds the sink, writes one batch & closes the sink.
func WriteActivity[D domain.SinkConfig[domain.Formula]](
	ctx context.Context,
	in *domain.WriteInput[D],
) (*domain.WriteOutput, error) {
	l := activity.GetLogger(ctx)

	if in == nil {
		l.Error(ERR_MISSING_SINK)
		return nil, ErrorMissingSink
	}
	if in.Batch == nil {
		l.Error(ERR_MISSING_BATCH, "sink", in.Sink.Name())
		return nil, ErrorMissingBatch
	}

	sink, err := in.Sink.BuildSink(ctx)
	if err != nil {
		l.Error(ERR_BUILDING_SINK, "sink", in.Sink.Name(), "error", err.Error())
		return nil, applicationError(ERR_BUILDING_SINK, err, sinkConfigErrors)
	}
	defer func() {
		if err := sink.Close(ctx); err != nil {
			l.Error("WriteActivity - error closing sink", "sink", sink.Name(), "error", err.Error())
		}
	}()

	b, err := sink.Write(ctx, in.Batch)
	if err != nil {
		l.Error(
			ERR_WRITING_BATCH,
			"sink", sink.Name(),
			"batch-id", in.Batch.BatchId,
			"error", err.Error(),
		)
		return nil, applicationError(ERR_WRITING_BATCH, err, sinkConfigErrors)
	}

	l.Debug(
		"WriteActivity - done",
		"sink", sink.Name(),
		"batch-id", b.BatchId,
		"start", b.StartOffset,
		"next", b.NextOffset,
		"errors", len(b.Error),
	)
	return &domain.WriteOutput{Batch: b}, nil
}

// WriteManifestActivity writes the run manifest to <Dir>/<JobID>.json.
func WriteManifestActivity(ctx context.Context, in *domain.ManifestInput) error {
	l := activity.GetLogger(ctx)

	if in == nil || in.Manifest.JobID == "" {
		l.Error(ERR_MISSING_MANIFEST_ID)
		return ErrorMissingManifestID
	}

	snap, err := snapshotters.LocalFileSnapshotterConfig{Path: in.Dir}.BuildSnapshotter(ctx)
	if err != nil {
		l.Error(ERR_WRITING_MANIFEST, "dir", in.Dir, "error", err.Error())
		return temporal.NewNonRetryableApplicationError(err.Error(), ERR_WRITING_MANIFEST, err)
	}
	defer snap.Close(ctx)

	if err := snap.Snapshot(ctx, in.Manifest.JobID, in.Manifest); err != nil {
		l.Error(ERR_WRITING_MANIFEST, "dir", in.Dir, "job-id", in.Manifest.JobID, "error", err.Error())
		if errors.Is(err, snapshotters.ErrLocalFileInvalidKey) {
			return temporal.NewNonRetryableApplicationError(err.Error(), ERR_WRITING_MANIFEST, err)
		}
		return temporal.NewApplicationErrorWithCause(ERR_WRITING_MANIFEST, ERR_WRITING_MANIFEST, err)
	}

	l.Debug("WriteManifestActivity - done", "dir", in.Dir, "job-id", in.Manifest.JobID)
	return nil
}
