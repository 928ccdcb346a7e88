// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

// Chunk is one stored piece of an ingested document.
// IDs are assigned sequentially from the store size at ingestion time, so
// they are unique only while ingestion stays sequential.
type Chunk struct {
	ID       int
	Text     string
	Filename string
}

// IngestResult reports what an ingestion produced.
type IngestResult struct {
	ChunkCount int
	ByteSize   int
}

// QueryRequest is a question with retrieval parameters.
type QueryRequest struct {
	Question string
	TopK     int
	// Temperature is accepted for API compatibility but not forwarded to
	// the model.
	Temperature float64
}

// QueryResult is the generated answer with retrieval metadata.
type QueryResult struct {
	Question      string
	Answer        string
	ContextChunks int
	Model         string
}
