package fts

import "errors"

// Declaration and query construction errors. They are programmer errors:
// raised where the misuse happens and never retried.
var (
	ErrInvalidTokenizer      = errors.New("invalid tokenizer")
	ErrEmptyTermList         = errors.New("empty term list")
	ErrUnsupportedOperand    = errors.New("unsupported operand")
	ErrInvalidFieldName      = errors.New("invalid field name")
	ErrInvalidTableName      = errors.New("invalid table name")
	ErrNoFields              = errors.New("schema declares no text fields")
	ErrDuplicateField        = errors.New("duplicate field")
	ErrConflictingTokenizer  = errors.New("fields declare different tokenizers")
	ErrUnsupportedGeneration = errors.New("unsupported fts generation")
)
