package design_space

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/hankgalt/design-space/pkg/domain"
)

func DefaultActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute * 10,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	}
}

func ExecuteFetchElementsActivity[S domain.ElementSourceConfig](
	ctx workflow.Context,
	source S,
) (*domain.FetchElementsOutput, error) {
	// setup activity options
	ao := DefaultActivityOptions()
	ao.RetryPolicy.NonRetryableErrorTypes = append(
		errorTypes(sourceConfigErrors),
		ERR_MISSING_SOURCE,
	)
	ctx = workflow.WithActivityOptions(ctx, ao)

	var resp domain.FetchElementsOutput
	err := workflow.ExecuteActivity(
		ctx,
		FetchElementsActivityAlias(source.Name()),
		&domain.FetchElementsInput[S]{Source: source},
	).Get(ctx, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func ExecuteEnumerateFormulasActivity(
	ctx workflow.Context,
	in *domain.EnumerateInput,
) (*domain.EnumerateOutput, error) {
	// setup activity options
	ao := DefaultActivityOptions()
	ao.RetryPolicy.NonRetryableErrorTypes = errorTypes(enumerationErrors)
	ctx = workflow.WithActivityOptions(ctx, ao)

	var resp domain.EnumerateOutput
	if err := workflow.ExecuteActivity(ctx, EnumerateFormulasActivityAlias, in).Get(ctx, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func AsyncExecuteWriteActivity[D domain.SinkConfig[domain.Formula]](
	ctx workflow.Context,
	sink D,
	batch *domain.BatchProcess[domain.Formula],
) workflow.Future {
	// setup activity options
	ao := DefaultActivityOptions()
	ao.RetryPolicy.NonRetryableErrorTypes = append(
		errorTypes(sinkConfigErrors),
		ERR_MISSING_SINK,
		ERR_MISSING_BATCH,
	)
	ctx = workflow.WithActivityOptions(ctx, ao)

	return workflow.ExecuteActivity(ctx, WriteActivityAlias(sink.Name()), &domain.WriteInput[D]{
		Sink:  sink,
		Batch: batch,
	})
}

func ExecuteWriteManifestActivity(ctx workflow.Context, in *domain.ManifestInput) error {
	// setup activity options
	ao := DefaultActivityOptions()
	ao.StartToCloseTimeout = time.Minute
	ao.RetryPolicy.NonRetryableErrorTypes = []string{ERR_MISSING_MANIFEST_ID}
	ctx = workflow.WithActivityOptions(ctx, ao)

	return workflow.ExecuteActivity(ctx, WriteManifestActivityAlias, in).Get(ctx, nil)
}
