package sqllite

import "fmt"

// FormulaRow is a stored design space entry.
type FormulaRow struct {
	Position    int64  `db:"position"`
	Formula     string `db:"formula"`
	Elements    string `db:"elements"`
	NumElements int    `db:"num_elements"`
	CreatedAt   string `db:"created_at"`
}

// DesignSpaceSchema returns the DDL for a design space table. Positions are
// the 0-based offsets of formulas in the enumerated result set.
func DesignSpaceSchema(table string) string {
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %[1]s (
	position     INTEGER PRIMARY KEY,
	formula      TEXT NOT NULL UNIQUE,
	elements     TEXT NOT NULL DEFAULT '',
	num_elements INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
	);

	CREATE INDEX IF NOT EXISTS %[1]s_num_elements ON %[1]s (num_elements);
`, table)
}
