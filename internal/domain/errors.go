package domain

import "errors"

// Error taxonomy for the extraction pipeline. Only ErrUnreadableSource is
// fatal to an ingestion call; every other error is absorbed into an
// ExtractionResult (or triggers a fallback stage) rather than propagated.
var (
	// ErrUnreadableSource means the file content could not be decoded at all.
	ErrUnreadableSource = errors.New("source cannot be read")

	// ErrHeaderUnresolved means no date column was found in the header row,
	// so the tabular strategy is inapplicable.
	ErrHeaderUnresolved = errors.New("no date column resolved in header")

	// ErrZeroTransactions means the structural parse ran but produced nothing.
	ErrZeroTransactions = errors.New("structural parse yielded no transactions")

	// ErrGenerativeNetwork means the external completion call failed or
	// timed out.
	ErrGenerativeNetwork = errors.New("generative service call failed")

	// ErrGenerativeSchema means the completion response was not parseable as
	// the expected transaction JSON.
	ErrGenerativeSchema = errors.New("generative response is not valid transaction JSON")
)
