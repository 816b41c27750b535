// Package fts declares full-text search virtual tables and the term algebra
// used to query them.
package fts

import (
	"fmt"
	"strings"

	"github.com/helixml/ftsq/domain/capability"
)

// Hidden columns shared by every searchable entity.
const (
	RowIDColumn = "rowid"
	RankColumn  = "rank"
)

// Schema describes a virtual table backed by one extension generation.
// The generation is the only thing that differs between FTS3, FTS4 and
// FTS5 tables; it doubles as the table's capability requirement.
type Schema struct {
	name       string
	generation capability.Generation
	fields     []TextField
	tokenizer  Tokenizer
}

// NewSchema declares a virtual table. At least one text field is required.
func NewSchema(name string, generation capability.Generation, fields ...TextField) (Schema, error) {
	if !identifierPattern.MatchString(name) {
		return Schema{}, fmt.Errorf("%w: %q", ErrInvalidTableName, name)
	}
	if !generation.Valid() {
		return Schema{}, fmt.Errorf("table %s: %w: %d", name, ErrUnsupportedGeneration, int(generation))
	}
	if len(fields) == 0 {
		return Schema{}, fmt.Errorf("table %s: %w", name, ErrNoFields)
	}

	seen := make(map[string]struct{}, len(fields))
	var tokenizer Tokenizer
	for _, f := range fields {
		if _, dup := seen[f.Name()]; dup {
			return Schema{}, fmt.Errorf("table %s: %w: %s", name, ErrDuplicateField, f.Name())
		}
		seen[f.Name()] = struct{}{}

		tok := f.Tokenizer()
		if tok.IsZero() {
			continue
		}
		if !tokenizer.IsZero() && tokenizer != tok {
			return Schema{}, fmt.Errorf("table %s: %w: %s and %s", name, ErrConflictingTokenizer, tokenizer, tok)
		}
		tokenizer = tok
	}

	declared := make([]TextField, len(fields))
	copy(declared, fields)
	return Schema{
		name:       name,
		generation: generation,
		fields:     declared,
		tokenizer:  tokenizer,
	}, nil
}

// NewFTS3Schema declares a table requiring the FTS3 extension.
func NewFTS3Schema(name string, fields ...TextField) (Schema, error) {
	return NewSchema(name, capability.Gen3, fields...)
}

// NewFTS4Schema declares a table requiring the FTS4 extension.
func NewFTS4Schema(name string, fields ...TextField) (Schema, error) {
	return NewSchema(name, capability.Gen4, fields...)
}

// NewFTS5Schema declares a table requiring the FTS5 extension.
func NewFTS5Schema(name string, fields ...TextField) (Schema, error) {
	return NewSchema(name, capability.Gen5, fields...)
}

// Name returns the table name.
func (s Schema) Name() string { return s.name }

// Generation returns the extension generation the table is created with.
func (s Schema) Generation() capability.Generation { return s.generation }

// Requirement returns what the engine must provide for the table to exist.
func (s Schema) Requirement() capability.Requirement {
	return capability.RequireGeneration(s.generation)
}

// Fields returns the declared text fields in declaration order.
func (s Schema) Fields() []TextField {
	out := make([]TextField, len(s.fields))
	copy(out, s.fields)
	return out
}

// FieldNames returns the text column names in declaration order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name()
	}
	return names
}

// Field finds a declared field by name.
func (s Schema) Field(name string) (TextField, bool) {
	for _, f := range s.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return TextField{}, false
}

// ColumnRef returns the quoted, table-qualified reference to a column.
func (s Schema) ColumnRef(column string) string {
	return fmt.Sprintf(`"%s"."%s"`, s.name, column)
}

// Tokenizer returns the table tokenizer; the zero value means default.
func (s Schema) Tokenizer() Tokenizer { return s.tokenizer }

// HasRank reports whether the engine populates the rank column.
// Only FTS5 exposes a hidden rank column.
func (s Schema) HasRank() bool { return s.generation == capability.Gen5 }

// CreateTableSQL returns the DDL creating the virtual table.
func (s Schema) CreateTableSQL() string {
	args := s.FieldNames()
	if tok := s.tokenizerArg(); tok != "" {
		args = append(args, tok)
	}
	return fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS "%s" USING %s(%s)`,
		s.name, s.generation, strings.Join(args, ", "))
}

// DropTableSQL returns the DDL removing the virtual table.
func (s Schema) DropTableSQL() string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, s.name)
}

// tokenizerArg renders the tokenize option for the table's generation.
// FTS3 and FTS4 have no ascii tokenizer; their simple tokenizer is the
// ASCII-only equivalent.
func (s Schema) tokenizerArg() string {
	if s.tokenizer.IsZero() {
		return ""
	}
	if s.generation == capability.Gen5 {
		return fmt.Sprintf("tokenize='%s'", s.tokenizer.Name())
	}
	name := s.tokenizer.Name()
	if s.tokenizer == TokenizerASCII {
		name = "simple"
	}
	return "tokenize=" + name
}
