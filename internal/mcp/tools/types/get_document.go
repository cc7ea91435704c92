package types

type DocumentResult struct {
	DocumentID string         `json:"document_id"`
	DocTitle   string         `json:"doc_title,omitempty"`
	DocType    string         `json:"doc_type,omitempty"`
	DocDate    string         `json:"doc_date,omitempty"`
	ChunkCount int            `json:"chunk_count"`
	Chunks     []ChunkSummary `json:"chunks"`
}

type ChunkSummary struct {
	ChunkNumber int    `json:"chunk_number"`
	Kind        string `json:"kind"`
	Heading     string `json:"heading,omitempty"`
	Snippet     string `json:"snippet"`
}
