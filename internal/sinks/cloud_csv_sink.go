package sinks

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
	"github.com/comfforts/logger"

	"github.com/hankgalt/design-space/pkg/domain"
)

const (
	ERR_CLOUD_CSV_SINK_BUCKET_REQUIRED = "cloud csv sink: bucket name is required"
	ERR_CLOUD_CSV_SINK_NIL_CLIENT      = "cloud csv sink: client is not initialized"
)

var (
	ErrCloudCSVSinkBucketRequired = errors.New(ERR_CLOUD_CSV_SINK_BUCKET_REQUIRED)
	ErrCloudCSVSinkNilClient      = errors.New(ERR_CLOUD_CSV_SINK_NIL_CLIENT)
)

const CloudCSVSink = "cloud-csv-sink"

// Cloud CSV (GCS) sink, one object per batch.
type cloudCSVSink struct {
	bucket string
	prefix string
	client *storage.Client
}

// Name of the sink.
func (s *cloudCSVSink) Name() string { return CloudCSVSink }

// Close closes the storage client.
func (s *cloudCSVSink) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Write uploads the batch as <prefix>/part-<start>.csv. Objects are keyed by
// batch start, so retried batches overwrite their own part.
func (s *cloudCSVSink) Write(ctx context.Context, b *domain.BatchProcess[domain.Formula]) (*domain.BatchProcess[domain.Formula], error) {
	if s.client == nil {
		return b, ErrCloudCSVSinkNilClient
	}
	if b == nil {
		return b, ErrSinkNilBatch
	}

	l, err := logger.LoggerFromContext(ctx)
	if err != nil {
		l = logger.GetSlogLogger()
	}

	name := PartObjectName(s.prefix, b.StartOffset)
	ow := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	ow.ContentType = "text/csv"

	w := csv.NewWriter(ow)
	recs := pendingRecords(b)
	rows := make([][]string, 0, len(recs)+1)
	rows = append(rows, []string{CSVHeader})
	for _, rec := range recs {
		rows = append(rows, []string{rec.Data.Formula})
	}
	if err := w.WriteAll(rows); err != nil {
		ow.Close()
		return b, fmt.Errorf("cloud csv sink: write %s: %w", name, err)
	}
	if err := ow.Close(); err != nil {
		return b, fmt.Errorf("cloud csv sink: upload %s: %w", name, err)
	}

	markWritten(recs)
	b.Done = true
	l.Debug("cloud csv sink: batch uploaded", "bucket", s.bucket, "object", name, "records", len(recs))
	return b, nil
}

// PartObjectName returns the object name of the batch starting at start.
func PartObjectName(prefix string, start uint64) string {
	return path.Join(prefix, fmt.Sprintf("part-%d.csv", start))
}

// Cloud CSV sink config.
type CloudCSVSinkConfig struct {
	Bucket string
	Prefix string // object prefix, e.g. "design-space/BaTiO"
}

// Name of the sink.
func (c CloudCSVSinkConfig) Name() string { return CloudCSVSink }

// BuildSink builds a cloud CSV sink from the config.
func (c CloudCSVSinkConfig) BuildSink(ctx context.Context) (domain.Sink[domain.Formula], error) {
	if c.Bucket == "" {
		return nil, ErrCloudCSVSinkBucketRequired
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("cloud csv sink: failed to create storage client: %w", err)
	}

	return &cloudCSVSink{
		bucket: c.Bucket,
		prefix: c.Prefix,
		client: client,
	}, nil
}
