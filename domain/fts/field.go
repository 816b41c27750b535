package fts

import (
	"fmt"
	"regexp"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FieldKindText is the field kind lookups are registered against.
const FieldKindText = "fts_text"

// reservedColumns are hidden columns every virtual table already has.
var reservedColumns = map[string]struct{}{
	RowIDColumn: {},
	RankColumn:  {},
}

// FieldValidator is a declaration-time hook run by NewTextField.
type FieldValidator func(TextField) error

// FieldOption configures a TextField at declaration time.
type FieldOption func(*TextField) error

// TextField is a searchable text column of a virtual table.
type TextField struct {
	name       string
	tokenizer  Tokenizer
	validators []FieldValidator
}

// WithTokenizer validates and attaches a tokenizer. An invalid name fails
// NewTextField immediately.
func WithTokenizer(name string) FieldOption {
	return func(f *TextField) error {
		tok, err := NewTokenizer(name)
		if err != nil {
			return err
		}
		f.tokenizer = tok
		return nil
	}
}

// WithValidator adds a custom declaration-time check.
func WithValidator(v FieldValidator) FieldOption {
	return func(f *TextField) error {
		f.validators = append(f.validators, v)
		return nil
	}
}

// NewTextField declares a text field.
func NewTextField(name string, opts ...FieldOption) (TextField, error) {
	f := TextField{name: name}
	for _, opt := range opts {
		if err := opt(&f); err != nil {
			return TextField{}, fmt.Errorf("field %s: %w", name, err)
		}
	}
	if !identifierPattern.MatchString(name) {
		return TextField{}, fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
	}
	if _, reserved := reservedColumns[name]; reserved {
		return TextField{}, fmt.Errorf("%w: %q is a hidden column", ErrInvalidFieldName, name)
	}
	for _, v := range f.validators {
		if err := v(f); err != nil {
			return TextField{}, fmt.Errorf("field %s: %w", name, err)
		}
	}
	return f, nil
}

// MustTextField is NewTextField for static declarations; it panics on error.
func MustTextField(name string, opts ...FieldOption) TextField {
	f, err := NewTextField(name, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the column name.
func (f TextField) Name() string { return f.name }

// Kind returns the field kind used for lookup registration.
func (f TextField) Kind() string { return FieldKindText }

// Tokenizer returns the tokenizer choice; the zero value means default.
func (f TextField) Tokenizer() Tokenizer { return f.tokenizer }
