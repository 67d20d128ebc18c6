package pipeline

import "errors"

// Fatal error kinds abort the whole invocation before any partial output.
// Row-local kinds are absorbed into filtering and never reach the caller.
var (
	// ErrUnsupportedInputType is returned when the declared MIME type is
	// not in the adapter's allow-list. Reported before any parsing.
	ErrUnsupportedInputType = errors.New("unsupported input type")

	// ErrMalformedInput is returned when bytes do not parse as the
	// declared format. Wraps the native decoder diagnostic.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedFormatVariant is returned when a parsed document
	// matches none of the adapter's known top-level shapes.
	ErrUnsupportedFormatVariant = errors.New("unsupported format variant")

	// ErrFieldExtraction marks a failed mandatory extraction for one row.
	// The row is dropped; the batch continues.
	ErrFieldExtraction = errors.New("field extraction failed")
)
