// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
package usecases

import "errors"

// Error taxonomy for the two pipelines. Each external call boundary maps
// to exactly one category so the HTTP layer can pick a status without
// string-matching. Wrap with fmt.Errorf("%w: ...") and match with errors.Is.
var (
	// ErrMissingQuestion is a caller input error: the request carried no
	// usable question. Other services are never called for this request.
	ErrMissingQuestion = errors.New("question is required")

	// ErrServiceUnavailable means a dependency was never initialized.
	// Startup-level: all requests fail fast until the operator intervenes.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrEmbeddingFailed is a per-request failure of the embedding call.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrRetrievalFailed is a per-request failure of the vector store query.
	ErrRetrievalFailed = errors.New("retrieval failed")

	// ErrGenerationFailed is a per-request failure of the chat-completion call.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrDatasetMissing means the seed dataset file does not exist.
	// Fatal to that ingestion run only; the store is left untouched.
	ErrDatasetMissing = errors.New("dataset missing")

	// ErrDatasetMalformed means the seed dataset file could not be parsed.
	// Fatal to that ingestion run only; the store is left untouched.
	ErrDatasetMalformed = errors.New("dataset malformed")
)
