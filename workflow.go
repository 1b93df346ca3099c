package design_space

import (
	"container/list"
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/hankgalt/design-space/pkg/domain"
	"github.com/hankgalt/design-space/pkg/formula"
)

const (
	FAILED_REMOVE_FUTURE = "failed to remove future from queue"
)

var (
	ErrFailedRemoveFuture = errors.New(FAILED_REMOVE_FUTURE)
)

const DefaultBatchSize = uint(500)
const MinimumInProcessBatches = uint(2)

// EnumerateDesignSpaceWorkflow fetches elements from source S, enumerates the
// unique reduced formulas & writes them in batches to sink D.
func EnumerateDesignSpaceWorkflow[S domain.ElementSourceConfig, D domain.SinkConfig[domain.Formula]](
	ctx workflow.Context,
	req *domain.EnumerationRequest[S, D],
) (*domain.EnumerationRequest[S, D], error) {
	l := workflow.GetLogger(ctx)

	wkflname := workflow.GetInfo(ctx).WorkflowType.Name

	l.Debug(
		"EnumerateDesignSpaceWorkflow workflow started",
		"source", req.Source.Name(),
		"sink", req.Sink.Name(),
		"workflow", wkflname,
	)

	resp, err := enumerateDesignSpaceWorkflow(ctx, req)
	if err != nil {
		var appErr *temporal.ApplicationError
		if errors.As(err, &appErr) {
			l.Error(
				"EnumerateDesignSpaceWorkflow - temporal application error",
				"workflow", wkflname,
				"error", err.Error(),
				"type", appErr.Type(),
				"non-retryable", appErr.NonRetryable(),
			)
		} else {
			l.Error(
				"EnumerateDesignSpaceWorkflow - temporal error",
				"workflow", wkflname,
				"error", err.Error(),
				"type", fmt.Sprintf("%T", err),
			)
		}
		return resp, err
	}

	l.Debug(
		"EnumerateDesignSpaceWorkflow workflow completed",
		"source", resp.Source.Name(),
		"sink", resp.Sink.Name(),
		"formulas", resp.Formulas,
		"workflow", wkflname,
	)
	return resp, nil
}

func enumerateDesignSpaceWorkflow[S domain.ElementSourceConfig, D domain.SinkConfig[domain.Formula]](
	ctx workflow.Context,
	req *domain.EnumerationRequest[S, D],
) (*domain.EnumerationRequest[S, D], error) {
	l := workflow.GetLogger(ctx)

	info := workflow.GetInfo(ctx)
	wkflname := info.WorkflowType.Name

	// validate & setup request state
	if req.NumElements < 1 {
		return req, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("%s: %d", formula.ERR_INVALID_ARITY, req.NumElements),
			formula.ERR_INVALID_ARITY,
			formula.ErrInvalidArity,
		)
	}
	if req.JobID == "" {
		req.JobID = info.WorkflowExecution.ID
	}
	if req.BatchSize == 0 {
		req.BatchSize = DefaultBatchSize
	}
	if req.MaxInProcessBatches < MinimumInProcessBatches {
		req.MaxInProcessBatches = MinimumInProcessBatches
	}
	if o, ok := any(req.Sink).(domain.OrderedSinkConfig); ok && o.Ordered() {
		req.MaxInProcessBatches = 1
	}
	if req.Batches == nil {
		req.Batches = map[string]*domain.BatchProcess[domain.Formula]{}
	}
	req.Offsets = []uint64{0}

	// Fetch elements from source
	fetched, err := ExecuteFetchElementsActivity(ctx, req.Source)
	if err != nil {
		return req, err
	}
	req.Elements = fetched.Elements

	// Enumerate unique formulas
	enumerated, err := ExecuteEnumerateFormulasActivity(ctx, &domain.EnumerateInput{
		Elements:    req.Elements,
		NumElements: req.NumElements,
		Order:       req.Order,
	})
	if err != nil {
		return req, err
	}
	req.Candidates = enumerated.Candidates
	req.Formulas = uint64(len(enumerated.Formulas))
	l.Debug(
		"enumerateDesignSpaceWorkflow formulas enumerated",
		"elements", req.Elements,
		"candidates", req.Candidates,
		"formulas", req.Formulas,
		"workflow", wkflname,
	)

	// Write batches to sink through a queue of in-flight futures
	batches := buildBatches(enumerated.Formulas, req.BatchSize)
	q := list.New()
	next := 0
	for next < len(batches) || q.Len() > 0 {
		if q.Len() < int(req.MaxInProcessBatches) && next < len(batches) {
			b := batches[next]
			next++

			req.Offsets = append(req.Offsets, b.NextOffset)
			req.Batches[b.BatchId] = b
			q.PushBack(AsyncExecuteWriteActivity(ctx, req.Sink, b))
			continue
		}

		// Remove future from queue & get output
		future, ok := q.Remove(q.Front()).(workflow.Future)
		if !ok {
			return req, temporal.NewApplicationErrorWithCause(FAILED_REMOVE_FUTURE, FAILED_REMOVE_FUTURE, ErrFailedRemoveFuture)
		}
		var wOut domain.WriteOutput
		if err := future.Get(ctx, &wOut); err != nil {
			return req, err
		}
		req.Batches[wOut.Batch.BatchId] = wOut.Batch
	}
	req.Done = true

	if req.ManifestDir != "" {
		if err := ExecuteWriteManifestActivity(ctx, &domain.ManifestInput{
			Dir:      req.ManifestDir,
			Manifest: buildManifest(ctx, req),
		}); err != nil {
			return req, err
		}
	}

	l.Debug(
		"enumerateDesignSpaceWorkflow workflow processed",
		"source", req.Source.Name(),
		"sink", req.Sink.Name(),
		"batch-count", len(batches),
		"workflow", wkflname,
	)
	return req, nil
}

// buildBatches slices formulas into batches of at most size records.
func buildBatches(formulas []domain.Formula, size uint) []*domain.BatchProcess[domain.Formula] {
	batches := []*domain.BatchProcess[domain.Formula]{}
	for start := 0; start < len(formulas); start += int(size) {
		end := min(start+int(size), len(formulas))
		b := &domain.BatchProcess[domain.Formula]{
			BatchId:     getBatchId(uint64(start), uint64(end)),
			StartOffset: uint64(start),
			NextOffset:  uint64(end),
			Records:     make([]*domain.BatchRecord[domain.Formula], 0, end-start),
		}
		for _, f := range formulas[start:end] {
			b.Records = append(b.Records, &domain.BatchRecord[domain.Formula]{
				Data:  f,
				Start: f.Position,
				End:   f.Position + 1,
			})
		}
		batches = append(batches, b)
	}
	return batches
}

func buildManifest[S domain.ElementSourceConfig, D domain.SinkConfig[domain.Formula]](
	ctx workflow.Context,
	req *domain.EnumerationRequest[S, D],
) domain.Manifest {
	errCount := 0
	for _, b := range req.Batches {
		for _, n := range b.Error {
			errCount += n
		}
	}
	return domain.Manifest{
		JobID:       req.JobID,
		Source:      req.Source.Name(),
		Sink:        req.Sink.Name(),
		Elements:    req.Elements,
		NumElements: req.NumElements,
		Order:       req.Order,
		Candidates:  req.Candidates,
		Formulas:    req.Formulas,
		Batches:     len(req.Batches),
		Errors:      errCount,
		CompletedAt: workflow.Now(ctx).UTC(),
	}
}

func getBatchId(start, end uint64) string {
	return fmt.Sprintf("batch-%d-%d", start, end)
}
