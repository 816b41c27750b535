package service

import "errors"

var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("ftsq: client is closed")

	// ErrUnknownTable indicates the table is not declared or was suppressed.
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnknownField indicates the table has no such field.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownLookup indicates the lookup is not registered for the field.
	ErrUnknownLookup = errors.New("unknown lookup")

	// ErrDuplicateTable indicates two schemas share a table name.
	ErrDuplicateTable = errors.New("duplicate table")
)
