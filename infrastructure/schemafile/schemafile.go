// Package schemafile loads virtual table declarations from YAML.
//
// A file lists tables, each with a module and its text fields:
//
//	tables:
//	  - name: breakfast
//	    module: fts5
//	    fields:
//	      - name: ingredients
//	        tokenizer: porter
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/helixml/ftsq/domain/capability"
	"github.com/helixml/ftsq/domain/fts"
)

// ErrInvalidFile indicates the file is not a valid declaration document.
var ErrInvalidFile = errors.New("invalid schema file")

type document struct {
	Tables []table `yaml:"tables"`
}

type table struct {
	Name   string  `yaml:"name"`
	Module string  `yaml:"module"`
	Fields []field `yaml:"fields"`
}

type field struct {
	Name      string `yaml:"name"`
	Tokenizer string `yaml:"tokenizer"`
}

// Load reads and parses the file at path.
func Load(path string) ([]fts.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	schemas, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schemas, nil
}

// Parse decodes declarations and validates every table and field.
// Unknown keys are rejected.
func Parse(data []byte) ([]fts.Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidFile, err)
	}
	if len(doc.Tables) == 0 {
		return nil, fmt.Errorf("%w: no tables declared", ErrInvalidFile)
	}

	schemas := make([]fts.Schema, 0, len(doc.Tables))
	for i, t := range doc.Tables {
		s, err := t.schema()
		if err != nil {
			return nil, fmt.Errorf("table %d (%s): %w", i, t.Name, err)
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

func (t table) schema() (fts.Schema, error) {
	module := t.Module
	if module == "" {
		module = capability.Gen5.String()
	}
	gen, err := capability.ParseGeneration(module)
	if err != nil {
		return fts.Schema{}, err
	}

	fields := make([]fts.TextField, 0, len(t.Fields))
	for _, f := range t.Fields {
		var opts []fts.FieldOption
		if f.Tokenizer != "" {
			opts = append(opts, fts.WithTokenizer(f.Tokenizer))
		}
		tf, err := fts.NewTextField(f.Name, opts...)
		if err != nil {
			return fts.Schema{}, err
		}
		fields = append(fields, tf)
	}
	return fts.NewSchema(t.Name, gen, fields...)
}
