package sources

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/comfforts/logger"

	"github.com/hankgalt/design-space/pkg/domain"
)

// Error constants and variables
const (
	ErrMsgCloudCSVClientNotInitialized = "cloud csv: client is not initialized"
	ErrMsgCloudCSVObjectPathRequired   = "cloud csv: object path is required"
	ErrMsgCloudCSVBucketRequired       = "cloud csv: bucket name is required"
	ErrMsgCloudCSVObjectNotExist       = "cloud csv: object does not exist or error getting attributes"
)

var (
	ErrCloudCSVClientNotInitialized = errors.New(ErrMsgCloudCSVClientNotInitialized)
	ErrCloudCSVObjectPathRequired   = errors.New(ErrMsgCloudCSVObjectPathRequired)
	ErrCloudCSVBucketRequired       = errors.New(ErrMsgCloudCSVBucketRequired)
	ErrCloudCSVObjectNotExist       = errors.New(ErrMsgCloudCSVObjectNotExist)
)

const (
	CloudCSVSource = "cloud-csv-source"
)

// Cloud CSV (GCS) source.
type cloudCSVSource struct {
	path      string
	bucket    string
	delimiter rune
	client    *storage.Client
}

// Name of the source.
func (s *cloudCSVSource) Name() string { return CloudCSVSource }

// Close closes the storage client.
func (s *cloudCSVSource) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Elements reads the element symbols from the first row of the object.
func (s *cloudCSVSource) Elements(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrCloudCSVClientNotInitialized
	}

	l, err := logger.LoggerFromContext(ctx)
	if err != nil {
		l = logger.GetSlogLogger()
	}

	obj := s.client.Bucket(s.bucket).Object(s.path)
	rc, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			l.Error(ErrMsgCloudCSVObjectNotExist, "bucket", s.bucket, "path", s.path)
			return nil, ErrCloudCSVObjectNotExist
		}
		return nil, fmt.Errorf("cloud csv: error creating reader for object %s in bucket %s: %w", s.path, s.bucket, err)
	}
	defer func() {
		if err := rc.Close(); err != nil {
			l.Error("cloud csv: error closing reader", "error", err.Error())
		}
	}()

	elements, err := readElementRow(rc, s.delimiter)
	if err != nil {
		return nil, err
	}
	l.Debug("cloud csv: read elements", "bucket", s.bucket, "path", s.path, "num-elements", len(elements))
	return elements, nil
}

// Cloud CSV source config. Credentials are resolved from the environment
// (GOOGLE_APPLICATION_CREDENTIALS or the metadata server).
type CloudCSVConfig struct {
	Bucket    string
	Path      string
	Delimiter rune
}

// Name of the source.
func (c CloudCSVConfig) Name() string { return CloudCSVSource }

// BuildSource builds a cloud CSV source from the config.
func (c CloudCSVConfig) BuildSource(ctx context.Context) (domain.ElementSource, error) {
	if c.Path == "" {
		return nil, ErrCloudCSVObjectPathRequired
	}
	if c.Bucket == "" {
		return nil, ErrCloudCSVBucketRequired
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("cloud csv: failed to create storage client: %w", err)
	}

	return &cloudCSVSource{
		path:      c.Path,
		bucket:    c.Bucket,
		delimiter: delimiterOrDefault(c.Delimiter),
		client:    client,
	}, nil
}
