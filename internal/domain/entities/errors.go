package entities

import "errors"

// Sentinel errors for input validation and gateway failures. Callers wrap
// these with fmt.Errorf("%w: ...") and match with errors.Is.
var (
	// ErrUnsupportedFileType rejects uploads that are not .txt, .md or .pdf.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrPayloadTooLarge rejects uploads over the ingestion size limit.
	ErrPayloadTooLarge = errors.New("file too large")

	// ErrEmptyQuestion rejects queries whose question is blank.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrInvalidTopK rejects negative top_k values.
	ErrInvalidTopK = errors.New("top_k must not be negative")

	// ErrInvalidChunking rejects chunk size / overlap pairs that would not
	// terminate (overlap >= size) or make no sense (size <= 0, overlap < 0).
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrGatewayUnavailable marks transport-level failures reaching the
	// inference gateway (connection refused, timeout, DNS).
	ErrGatewayUnavailable = errors.New("llm gateway unreachable")

	// ErrGatewayStatus marks a non-success response from the gateway.
	ErrGatewayStatus = errors.New("llm gateway returned an error status")
)
