package dto

// DocumentRequest is the body of POST /tables/{table}/documents.
type DocumentRequest struct {
	Values map[string]string `json:"values"`
}

// DocumentCreatedResponse reports the row id of an inserted document.
type DocumentCreatedResponse struct {
	RowID int64 `json:"rowid"`
}

// DocumentResponse is one search hit.
type DocumentResponse struct {
	RowID  int64             `json:"rowid"`
	Rank   float64           `json:"rank"`
	Values map[string]string `json:"values"`
}

// SearchMeta echoes the compiled search.
type SearchMeta struct {
	Table  string `json:"table"`
	Field  string `json:"field"`
	Lookup string `json:"lookup"`
	Count  int    `json:"count"`
}

// SearchResponse is the body of GET /tables/{table}/search.
type SearchResponse struct {
	Data []DocumentResponse `json:"data"`
	Meta SearchMeta         `json:"meta"`
}

// CountResponse is the body of GET /tables/{table}/count.
type CountResponse struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}
