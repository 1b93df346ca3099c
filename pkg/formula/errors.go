package formula

import (
	"errors"
	"fmt"
)

const (
	ERR_INVALID_INPUT = "formula: invalid input"
	ERR_INVALID_ARITY = "formula: invalid arity"
	ERR_PARSE         = "formula: parse error"
	ERR_INVALID_ORDER = "formula: unknown element order"
	ERR_INVALID_TABLE = "formula: invalid element table"
)

var (
	// ErrInvalidInput indicates an empty or malformed element set.
	ErrInvalidInput = errors.New(ERR_INVALID_INPUT)
	// ErrInvalidArity indicates an arity outside [1, len(elements)].
	ErrInvalidArity = errors.New(ERR_INVALID_ARITY)
	// ErrParse indicates a formula that could not be tokenized into known symbols.
	ErrParse = errors.New(ERR_PARSE)
	// ErrInvalidOrder indicates an unknown ordering name.
	ErrInvalidOrder = errors.New(ERR_INVALID_ORDER)
	// ErrInvalidTable indicates a malformed element table.
	ErrInvalidTable = errors.New(ERR_INVALID_TABLE)
)

// ParseError describes where tokenizing a formula failed.
type ParseError struct {
	Formula string
	Pos     int // byte offset of the offending token
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q at position %d: %s", ERR_PARSE, e.Formula, e.Pos, e.Reason)
}

// Unwrap makes errors.Is(err, ErrParse) hold.
func (e *ParseError) Unwrap() error { return ErrParse }
