package fts

// Document is one row of a virtual table.
type Document struct {
	rowID  int64
	rank   float64
	values map[string]string
}

// NewDocument creates a Document. Rank is engine-populated; callers building
// rows for insertion pass 0.
func NewDocument(rowID int64, rank float64, values map[string]string) Document {
	v := make(map[string]string, len(values))
	for k, val := range values {
		v[k] = val
	}
	return Document{rowID: rowID, rank: rank, values: v}
}

// RowID returns the engine-assigned row identifier.
func (d Document) RowID() int64 { return d.rowID }

// Rank returns the relevance score. Lower is better for FTS5's bm25.
// The representation stays float64 until a fixed-point need shows up.
func (d Document) Rank() float64 { return d.rank }

// Value returns the text of one field.
func (d Document) Value(field string) string { return d.values[field] }

// Values returns a copy of all field values.
func (d Document) Values() map[string]string {
	out := make(map[string]string, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}
