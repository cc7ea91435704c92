package types

type ChunkResult struct {
	DocumentID  string   `json:"document_id"`
	ChunkNumber int      `json:"chunk_number"`
	Kind        string   `json:"kind"`
	DocTitle    string   `json:"doc_title,omitempty"`
	Article     string   `json:"article,omitempty"`
	Section     string   `json:"section,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Snippet     string   `json:"snippet"`
	Similarity  float64  `json:"similarity"`
	Text        *string  `json:"text,omitempty"`
}
