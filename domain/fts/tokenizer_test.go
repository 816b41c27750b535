package fts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenizer(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{input: "unicode61"},
		{input: "ascii"},
		{input: "porter"},
		{input: "bogus", wantErr: true},
		{input: "", wantErr: true},
		{input: "Porter", wantErr: true},
		{input: "porter ascii", wantErr: true},
		{input: "trigram", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := NewTokenizer(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTokenizer))
				assert.True(t, tok.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, tok.Name())
		})
	}
}

func TestNewTokenizer_MessageListsChoicesInOrder(t *testing.T) {
	_, err := NewTokenizer("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unicode61,ascii,porter")
}

func TestNewTextField_InvalidTokenizerFailsAtDeclaration(t *testing.T) {
	_, err := NewTextField("ingredients", WithTokenizer("bogus"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTokenizer)
}

func TestNewTextField(t *testing.T) {
	f, err := NewTextField("ingredients", WithTokenizer("porter"))
	require.NoError(t, err)
	assert.Equal(t, "ingredients", f.Name())
	assert.Equal(t, TokenizerPorter, f.Tokenizer())
	assert.Equal(t, FieldKindText, f.Kind())

	for _, name := range []string{"", "1abc", "with space", `quo"te`, "rowid", "rank"} {
		_, err := NewTextField(name)
		assert.ErrorIs(t, err, ErrInvalidFieldName, name)
	}
}

func TestNewTextField_Validator(t *testing.T) {
	errTooShort := errors.New("too short")
	minLen := func(f TextField) error {
		if len(f.Name()) < 3 {
			return errTooShort
		}
		return nil
	}

	_, err := NewTextField("ab", WithValidator(minLen))
	assert.ErrorIs(t, err, errTooShort)

	_, err = NewTextField("body", WithValidator(minLen))
	assert.NoError(t, err)
}

func TestSupportedTokenizers(t *testing.T) {
	names := SupportedTokenizers()
	assert.Equal(t, []string{"unicode61", "ascii", "porter"}, names)

	names[0] = "mutated"
	assert.Equal(t, "unicode61", SupportedTokenizers()[0])
}
