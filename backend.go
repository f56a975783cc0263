package wastatus

import "context"

// Backend is the document store our message log records live in. A single
// backend instance is shared across all concurrent requests, implementations
// must be safe for that.
type Backend interface {
	// LookupRecord returns the log record whose messageId field equals the
	// passed in id. A missing record is returned as nil without error, store
	// failures are returned as errors.
	LookupRecord(ctx context.Context, messageID string) (*MessageLogRecord, error)

	// UpdateRecord applies the passed in partial update to the record with
	// the given identity
	UpdateRecord(ctx context.Context, id RecordID, update *RecordUpdate) error

	// Close releases any resources held by the backend
	Close() error
}
