package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures at the operation boundary. Front ends decide how
// to surface an error (inline message, alert, HTTP status) by its tag.
var (
	// ErrTagValidation marks input rejected locally without a network call
	ErrTagValidation = goerr.NewTag("validation")

	// ErrTagBackend marks a non-2xx response from the extraction backend
	ErrTagBackend = goerr.NewTag("backend")

	// ErrTagTransport marks a request that never received a response
	ErrTagTransport = goerr.NewTag("transport")

	// ErrTagEmptyResult marks a successful extraction with nothing to render
	ErrTagEmptyResult = goerr.NewTag("empty_result")

	// ErrTagBusy marks an operation that is already in flight
	ErrTagBusy = goerr.NewTag("busy")
)
