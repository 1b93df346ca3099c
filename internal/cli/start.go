package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	enums "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	ds "github.com/hankgalt/design-space"
	"github.com/hankgalt/design-space/internal/sinks"
	"github.com/hankgalt/design-space/internal/sources"
	"github.com/hankgalt/design-space/pkg/domain"
	"github.com/hankgalt/design-space/pkg/utils"
)

type startOptions struct {
	designOptions
	source       string
	bucket       string
	prefix       string
	jobID        string
	batchSize    uint
	maxInProcess uint
	manifestDir  string
}

func StartCmd() *cobra.Command {
	opts := &startOptions{}

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a design space workflow & wait for its result",
		Example: `  design-space start -e Ba,Ti,O -n 2 --sink sqlite
  design-space start --source gcs -d designs/BaTiO.csv -n 2 --sink gcs --prefix design-space/BaTiO`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := dialTemporal(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			return startEnumeration(ctx, c, opts)
		},
	}
	opts.addFlags(cmd)

	f := cmd.Flags()
	f.StringVar(&opts.source, "source", SourceList, "element source: list|csv|gcs")
	f.StringVar(&opts.bucket, "bucket", "", "GCS bucket for gcs source & sink, defaults to BUCKET env")
	f.StringVar(&opts.prefix, "prefix", "design-space", "GCS object prefix for the gcs sink")
	f.StringVar(&opts.jobID, "job-id", "", "workflow id, generated when empty")
	f.UintVar(&opts.batchSize, "batch-size", uint(ds.DefaultBatchSize), "formulas per sink batch")
	f.UintVar(&opts.maxInProcess, "max-in-process", ds.MinimumInProcessBatches, "maximum concurrent batch writes")
	f.StringVar(&opts.manifestDir, "manifest-dir", "", "directory to write the run manifest to")

	return cmd
}

// startEnumeration dispatches to the workflow of the selected source & sink.
func startEnumeration(ctx context.Context, c client.Client, opts *startOptions) error {
	objectPath := opts.designFile
	if err := opts.resolvePaths(); err != nil {
		return err
	}
	if opts.jobID == "" {
		opts.jobID = "design-space-" + uuid.New().String()
	}

	switch strings.ToLower(opts.source) {
	case SourceList:
		if len(opts.elements) == 0 {
			return ErrMissingElements
		}
		return startWithSink(ctx, c, opts, sources.ElementListConfig{Elements: opts.elements})
	case SourceCSV:
		if opts.designFile == "" {
			return ErrMissingElements
		}
		return startWithSink(ctx, c, opts, sources.LocalCSVConfig{Path: opts.designFile})
	case SourceGCS:
		if objectPath == "" {
			return ErrMissingElements
		}
		if err := opts.resolveBucket(objectPath); err != nil {
			return err
		}
		return startWithSink(ctx, c, opts, sources.CloudCSVConfig{Bucket: opts.bucket, Path: objectPath})
	}
	return fmt.Errorf("%w: %q", ErrUnknownSource, opts.source)
}

// resolveBucket falls back to the BUCKET env variable when --bucket is not set.
func (o *startOptions) resolveBucket(path string) error {
	if o.bucket != "" {
		return nil
	}
	fileCfg, err := utils.BuildCloudFileConfig(path)
	if err != nil {
		return err
	}
	o.bucket = fileCfg.Bucket
	return nil
}

func startWithSink[S domain.ElementSourceConfig](ctx context.Context, c client.Client, opts *startOptions, src S) error {
	switch strings.ToLower(opts.sink) {
	case SinkCSV:
		return startWorkflow(ctx, c, buildRequest(opts, src, sinks.LocalCSVSinkConfig{Path: opts.saveFile}))
	case SinkSQLite:
		return startWorkflow(ctx, c, buildRequest(opts, src, sinks.SQLLiteSinkConfig{DBFile: opts.dbFile, Table: opts.table}))
	case SinkPIF:
		return startWorkflow(ctx, c, buildRequest(opts, src, sinks.PIFSinkConfig{Path: opts.pifFile}))
	case SinkGCS:
		if err := opts.resolveBucket(opts.prefix); err != nil {
			return err
		}
		return startWorkflow(ctx, c, buildRequest(opts, src, sinks.CloudCSVSinkConfig{Bucket: opts.bucket, Prefix: opts.prefix}))
	case SinkNone:
		return startWorkflow(ctx, c, buildRequest(opts, src, sinks.NoopSinkConfig[domain.Formula]{}))
	}
	return fmt.Errorf("%w: %q", ErrUnknownSink, opts.sink)
}

func buildRequest[S domain.ElementSourceConfig, D domain.SinkConfig[domain.Formula]](
	opts *startOptions,
	src S,
	sink D,
) *domain.EnumerationRequest[S, D] {
	return &domain.EnumerationRequest[S, D]{
		JobID:               opts.jobID,
		NumElements:         opts.numElements,
		Order:               opts.order,
		BatchSize:           opts.batchSize,
		MaxInProcessBatches: opts.maxInProcess,
		Source:              src,
		Sink:                sink,
		ManifestDir:         opts.manifestDir,
	}
}

func startWorkflow[S domain.ElementSourceConfig, D domain.SinkConfig[domain.Formula]](
	ctx context.Context,
	c client.Client,
	req *domain.EnumerationRequest[S, D],
) error {
	l := loggerFrom(ctx)

	workflowOptions := client.StartWorkflowOptions{
		ID:                    req.JobID,
		TaskQueue:             ds.ApplicationName,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}
	alias := ds.EnumerationWorkflowAlias(req.Source.Name(), req.Sink.Name())

	run, err := c.ExecuteWorkflow(ctx, workflowOptions, alias, req)
	if err != nil {
		return fmt.Errorf("failed to start workflow %s: %w", alias, err)
	}
	l.Info("workflow started", "workflow", alias, "workflow-id", run.GetID(), "run-id", run.GetRunID())

	var result domain.EnumerationRequest[S, D]
	if err := run.Get(ctx, &result); err != nil {
		return fmt.Errorf("workflow %s failed: %w", alias, err)
	}

	l.Info(
		"workflow completed",
		"workflow", alias,
		"workflow-id", run.GetID(),
		"candidates", result.Candidates,
		"formulas", result.Formulas,
		"batches", len(result.Batches),
	)
	return nil
}
