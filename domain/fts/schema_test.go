package fts

import (
	"testing"

	"github.com/helixml/ftsq/domain/capability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaPresets(t *testing.T) {
	body := MustTextField("body")

	tests := []struct {
		name string
		ctor func(string, ...TextField) (Schema, error)
		gen  capability.Generation
	}{
		{name: "fts3", ctor: NewFTS3Schema, gen: capability.Gen3},
		{name: "fts4", ctor: NewFTS4Schema, gen: capability.Gen4},
		{name: "fts5", ctor: NewFTS5Schema, gen: capability.Gen5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.ctor("notes", body)
			require.NoError(t, err)
			assert.Equal(t, tt.gen, s.Generation())

			g, ok := s.Requirement().Generation()
			require.True(t, ok)
			assert.Equal(t, tt.gen, g)
			assert.Equal(t, capability.EngineSQLite, s.Requirement().Engine())
			assert.Equal(t, tt.gen == capability.Gen5, s.HasRank())
		})
	}
}

func TestNewSchema_Validation(t *testing.T) {
	body := MustTextField("body")

	_, err := NewFTS5Schema("notes")
	assert.ErrorIs(t, err, ErrNoFields)

	_, err = NewFTS5Schema("bad name", body)
	assert.ErrorIs(t, err, ErrInvalidTableName)

	_, err = NewFTS5Schema("notes", body, MustTextField("body"))
	assert.ErrorIs(t, err, ErrDuplicateField)

	_, err = NewSchema("notes", capability.Generation(7), body)
	assert.ErrorIs(t, err, ErrUnsupportedGeneration)

	_, err = NewFTS5Schema("notes",
		MustTextField("title", WithTokenizer("porter")),
		MustTextField("body", WithTokenizer("ascii")),
	)
	assert.ErrorIs(t, err, ErrConflictingTokenizer)
}

func TestSchema_CreateTableSQL(t *testing.T) {
	tests := []struct {
		name   string
		gen    capability.Generation
		fields []TextField
		want   string
	}{
		{
			name:   "fts5 default tokenizer",
			gen:    capability.Gen5,
			fields: []TextField{MustTextField("ingredients")},
			want:   `CREATE VIRTUAL TABLE IF NOT EXISTS "breakfast" USING fts5(ingredients)`,
		},
		{
			name:   "fts5 porter",
			gen:    capability.Gen5,
			fields: []TextField{MustTextField("title"), MustTextField("ingredients", WithTokenizer("porter"))},
			want:   `CREATE VIRTUAL TABLE IF NOT EXISTS "breakfast" USING fts5(title, ingredients, tokenize='porter')`,
		},
		{
			name:   "fts4 unicode61",
			gen:    capability.Gen4,
			fields: []TextField{MustTextField("ingredients", WithTokenizer("unicode61"))},
			want:   `CREATE VIRTUAL TABLE IF NOT EXISTS "breakfast" USING fts4(ingredients, tokenize=unicode61)`,
		},
		{
			name:   "fts3 ascii maps to simple",
			gen:    capability.Gen3,
			fields: []TextField{MustTextField("ingredients", WithTokenizer("ascii"))},
			want:   `CREATE VIRTUAL TABLE IF NOT EXISTS "breakfast" USING fts3(ingredients, tokenize=simple)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSchema("breakfast", tt.gen, tt.fields...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.CreateTableSQL())
		})
	}
}

func TestSchema_Field(t *testing.T) {
	s, err := NewFTS5Schema("breakfast", MustTextField("title"), MustTextField("ingredients"))
	require.NoError(t, err)

	f, ok := s.Field("ingredients")
	assert.True(t, ok)
	assert.Equal(t, "ingredients", f.Name())

	_, ok = s.Field("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"title", "ingredients"}, s.FieldNames())
}

func TestSchema_ColumnRef(t *testing.T) {
	s, err := NewFTS5Schema("breakfast", MustTextField("ingredients"))
	require.NoError(t, err)
	assert.Equal(t, `"breakfast"."ingredients"`, s.ColumnRef("ingredients"))
	assert.Equal(t, `DROP TABLE IF EXISTS "breakfast"`, s.DropTableSQL())
}
