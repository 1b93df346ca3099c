package sinks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqllite "github.com/hankgalt/design-space/internal/clients/sql_lite"
	"github.com/hankgalt/design-space/pkg/domain"
)

// Error constants and variables
const (
	ERR_SQLLITE_SINK_NIL               = "sql-lite sink is nil"
	ERR_SQLLITE_SINK_NIL_CLIENT        = "sql-lite sink: nil client"
	ERR_SQLLITE_SINK_DB_FILE_REQUIRED  = "sql-lite sink: DB file is required"
	ERR_SQLLITE_SINK_ALL_BATCH_RECORDS = "sql-lite sink: all batch records failed"
	ERR_SQLLITE_SINK_CLEAR             = "sql-lite sink: error clearing previous run"
)

var (
	ErrSQLLiteSinkNil             = errors.New(ERR_SQLLITE_SINK_NIL)
	ErrSQLLiteSinkNilClient       = errors.New(ERR_SQLLITE_SINK_NIL_CLIENT)
	ErrSQLLiteSinkDBFileRequired  = errors.New(ERR_SQLLITE_SINK_DB_FILE_REQUIRED)
	ErrSQLLiteSinkAllBatchRecords = errors.New(ERR_SQLLITE_SINK_ALL_BATCH_RECORDS)
	ErrSQLLiteSinkClear           = errors.New(ERR_SQLLITE_SINK_CLEAR)
)

const (
	SQLLiteSink         = "sql-lite-sink"
	DefaultFormulaTable = "design_space"
)

// FormulaWriter is the tiny capability we need.
type FormulaWriter interface {
	InsertFormula(ctx context.Context, table string, row sqllite.FormulaRow) (sql.Result, error)
	ClearFormulas(ctx context.Context, table string) (sql.Result, error)
	Close(ctx context.Context) error
}

// SQLLite sink.
type sqlLiteSink struct {
	client FormulaWriter // SQLLite client
	table  string        // table name
}

// Name returns the name of the SQLLite sink.
func (s *sqlLiteSink) Name() string { return SQLLiteSink }

// Close closes the SQLLite sink.
func (s *sqlLiteSink) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

// Write inserts the batch formulas, one row per record keyed by position.
// The batch at offset 0 clears rows of a previous run first, so batches must
// arrive in offset order. Failed inserts are recorded on the record; the
// write fails only when every record failed.
func (s *sqlLiteSink) Write(ctx context.Context, b *domain.BatchProcess[domain.Formula]) (*domain.BatchProcess[domain.Formula], error) {
	if s == nil {
		return b, ErrSQLLiteSinkNil
	}
	if s.client == nil {
		return b, ErrSQLLiteSinkNilClient
	}
	if b == nil {
		return b, ErrSinkNilBatch
	}

	if b.StartOffset == 0 {
		if _, err := s.client.ClearFormulas(ctx, s.table); err != nil {
			return b, fmt.Errorf("%w: %w", ErrSQLLiteSinkClear, err)
		}
	}

	if len(b.Records) == 0 {
		return b, nil // nothing to write
	}

	errs := map[string]int{}
	var errCount int
	for i, rec := range b.Records {
		// allow cancellation
		if err := checkCancelled(ctx); err != nil {
			return b, err
		}

		if rec == nil {
			errCount++
			continue
		}
		if rec.BatchResult.Error != "" {
			errCount++
			continue // skip already errored records
		}

		res, err := s.client.InsertFormula(ctx, s.table, sqllite.FormulaRow{
			Position:    int64(rec.Data.Position),
			Formula:     rec.Data.Formula,
			Elements:    strings.Join(rec.Data.Elements, ","),
			NumElements: len(rec.Data.Elements),
		})
		if err != nil {
			b.Records[i].BatchResult.Error = fmt.Sprintf("record %d insert: %s", rec.Start, err.Error())
			errs[err.Error()]++
			errCount++
			continue
		}

		n, err := res.RowsAffected()
		if err != nil {
			b.Records[i].BatchResult.Error = fmt.Sprintf("record %d rows affected: %s", rec.Start, err.Error())
			errs[err.Error()]++
			errCount++
			continue
		}
		b.Records[i].BatchResult.Result = n
	}

	// Set the error map on the batch
	if len(errs) > 0 {
		b.Error = errs
	}

	if errCount >= len(b.Records) {
		return b, ErrSQLLiteSinkAllBatchRecords
	}
	b.Done = true
	return b, nil
}

// SQLLiteDB sink config.
type SQLLiteSinkConfig struct {
	DBFile string // e.g., "design_space.db"
	Table  string // defaults to DefaultFormulaTable
}

// Name of the sink.
func (c SQLLiteSinkConfig) Name() string { return SQLLiteSink }

// Ordered reports that batches must be written sequentially.
func (c SQLLiteSinkConfig) Ordered() bool { return true }

// BuildSink builds a SQLLite sink from the config, creating the table if missing.
func (c SQLLiteSinkConfig) BuildSink(ctx context.Context) (domain.Sink[domain.Formula], error) {
	if c.DBFile == "" {
		return nil, ErrSQLLiteSinkDBFileRequired
	}
	table := c.Table
	if table == "" {
		table = DefaultFormulaTable
	}

	dbClient, err := sqllite.NewSQLLiteDBClient(c.DBFile)
	if err != nil {
		return nil, err
	}
	if err := dbClient.EnsureTable(ctx, table); err != nil {
		if cErr := dbClient.Close(ctx); cErr != nil {
			return nil, errors.Join(err, cErr)
		}
		return nil, err
	}

	return &sqlLiteSink{
		client: dbClient,
		table:  table,
	}, nil
}
