package models

// Chunk is a bounded text segment derived from one source URL. It is the
// unit of embedding and storage.
type Chunk struct {
	Text      string
	SourceURL string
	Metadata  map[string]interface{}
}

// Record is one stored row in the vector collection: the embedding paired
// with the text it was computed from.
type Record struct {
	ID        string
	Embedding []float32
	Content   string
	SourceURL string
	Metadata  map[string]interface{}
}
