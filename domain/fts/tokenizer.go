package fts

import (
	"fmt"
	"strings"
)

// supportedTokenizers is kept in declaration order for error messages.
var supportedTokenizers = []string{"unicode61", "ascii", "porter"}

// Tokenizer is a validated tokenizer choice for a text field.
// The zero value means "engine default".
type Tokenizer struct {
	name string
}

// Tokenizer choices.
var (
	TokenizerUnicode61 = Tokenizer{name: "unicode61"}
	TokenizerASCII     = Tokenizer{name: "ascii"}
	TokenizerPorter    = Tokenizer{name: "porter"}
)

// NewTokenizer validates name against the supported set.
func NewTokenizer(name string) (Tokenizer, error) {
	for _, s := range supportedTokenizers {
		if name == s {
			return Tokenizer{name: name}, nil
		}
	}
	return Tokenizer{}, fmt.Errorf("%w %q: tokenizer must be one of %s",
		ErrInvalidTokenizer, name, strings.Join(supportedTokenizers, ","))
}

// SupportedTokenizers returns the valid tokenizer names in declaration order.
func SupportedTokenizers() []string {
	out := make([]string, len(supportedTokenizers))
	copy(out, supportedTokenizers)
	return out
}

// Name returns the tokenizer name, or "" for the zero value.
func (t Tokenizer) Name() string { return t.name }

// IsZero reports whether no tokenizer was chosen.
func (t Tokenizer) IsZero() bool { return t.name == "" }

// String implements fmt.Stringer.
func (t Tokenizer) String() string { return t.name }
