// Package dto holds the request and response bodies of the v1 API.
package dto

// FieldResponse describes one text field of a table.
type FieldResponse struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Tokenizer string `json:"tokenizer,omitempty"`
}

// TableResponse describes one admitted table.
type TableResponse struct {
	Name    string          `json:"name"`
	Module  string          `json:"module"`
	Fields  []FieldResponse `json:"fields"`
	Lookups []string        `json:"lookups"`
	Rank    bool            `json:"rank"`
}

// TableListResponse is the body of GET /tables.
type TableListResponse struct {
	Data []TableResponse `json:"data"`
}

// SuppressionResponse names a hidden schema element and why it was hidden.
type SuppressionResponse struct {
	Element string `json:"element"`
	Reason  string `json:"reason"`
}

// CapabilitiesResponse is the body of GET /capabilities.
type CapabilitiesResponse struct {
	Engine      string                `json:"engine"`
	Generations []string              `json:"generations"`
	Suppressed  []SuppressionResponse `json:"suppressed"`
}
