package sqllite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/comfforts/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	ERR_SQLITE_DB_CONNECTION    = "sql-lite: error connecting to database"
	ERR_SQLITE_DB_DISCONNECTION = "sql-lite: error disconnecting from database"
	ERR_SQLITE_INVALID_TABLE    = "sql-lite: invalid table name"
)

var (
	ErrSqlLiteDBConn       = errors.New(ERR_SQLITE_DB_CONNECTION)
	ErrSqlLiteDBDisconn    = errors.New(ERR_SQLITE_DB_DISCONNECTION)
	ErrSqlLiteInvalidTable = errors.New(ERR_SQLITE_INVALID_TABLE)
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type SQLLiteDBClient struct {
	store *sqlx.DB
}

func NewSQLLiteDBClient(dbFile string) (*SQLLiteDBClient, error) {
	db, err := sqlx.Connect("sqlite3", dbFile)
	if err != nil {
		logger.GetSlogLogger().Error(ERR_SQLITE_DB_CONNECTION, "db-file", dbFile, "error", err.Error())
		return nil, ErrSqlLiteDBConn
	}

	return &SQLLiteDBClient{
		store: db,
	}, nil
}

// ExecuteSchema runs a multi statement schema.
func (db *SQLLiteDBClient) ExecuteSchema(ctx context.Context, schema string) (sql.Result, error) {
	return db.store.ExecContext(ctx, schema)
}

// EnsureTable creates the design space table if it does not exist.
func (db *SQLLiteDBClient) EnsureTable(ctx context.Context, table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrSqlLiteInvalidTable, table)
	}
	_, err := db.ExecuteSchema(ctx, DesignSpaceSchema(table))
	return err
}

// ClearFormulas deletes every row of table.
func (db *SQLLiteDBClient) ClearFormulas(ctx context.Context, table string) (sql.Result, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrSqlLiteInvalidTable, table)
	}
	return db.store.ExecContext(ctx, "DELETE FROM "+table)
}

func (db *SQLLiteDBClient) Close(ctx context.Context) error {
	if err := db.store.Close(); err != nil {
		l, lErr := logger.LoggerFromContext(ctx)
		if lErr != nil {
			l = logger.GetSlogLogger()
		}
		l.Error(ERR_SQLITE_DB_DISCONNECTION, "error", err.Error())
		return ErrSqlLiteDBDisconn
	}
	return nil
}

// InsertFormula upserts row by position, so a replayed batch rewrites its own
// rows. A formula already stored at another position violates the unique
// formula constraint and fails.
func (db *SQLLiteDBClient) InsertFormula(ctx context.Context, table string, row FormulaRow) (sql.Result, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrSqlLiteInvalidTable, table)
	}

	qryStr := "INSERT INTO " + table + " (position, formula, elements, num_elements) VALUES (:position, :formula, :elements, :num_elements)" +
		" ON CONFLICT(position) DO UPDATE SET formula = excluded.formula, elements = excluded.elements, num_elements = excluded.num_elements"
	return db.store.NamedExecContext(ctx, qryStr, row)
}

// FetchFormulas returns up to limit rows ordered by position, starting at offset.
func (db *SQLLiteDBClient) FetchFormulas(ctx context.Context, table string, offset, limit int) ([]FormulaRow, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrSqlLiteInvalidTable, table)
	}

	rows := []FormulaRow{}
	qryStr := fmt.Sprintf("SELECT position, formula, elements, num_elements, created_at FROM %s ORDER BY position LIMIT %d OFFSET %d", table, limit, offset)
	if err := db.store.SelectContext(ctx, &rows, qryStr); err != nil {
		return nil, err
	}
	return rows, nil
}

// CountFormulas returns the number of rows in table.
func (db *SQLLiteDBClient) CountFormulas(ctx context.Context, table string) (int, error) {
	if !tableNamePattern.MatchString(table) {
		return 0, fmt.Errorf("%w: %q", ErrSqlLiteInvalidTable, table)
	}

	var n int
	if err := db.store.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, err
	}
	return n, nil
}
