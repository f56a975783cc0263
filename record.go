package wastatus

// RecordID is the store assigned identity of a message log record
type RecordID string

// NilRecordID is our zero value for record identities
const NilRecordID = RecordID("")

//-----------------------------------------------------------------------------
// MessageLogRecord
//-----------------------------------------------------------------------------

// MessageLogRecord is the persisted log entry the sending path writes for each
// outbound message, later enriched with delivery status by the reconciler.
// MessageID is the external correlation key and is assumed unique among active
// records. CheckoutID is an opaque business identifier set by the sender, it
// is read during reconciliation and written back unchanged.
type MessageLogRecord struct {
	ID            RecordID
	MessageID     string
	CheckoutID    string
	RecipientID   string
	Status        StatusValue
	FormattedTime string
	ErrorCode     *int64
	ErrorMessage  *string
	ErrorDetails  *string
}

//-----------------------------------------------------------------------------
// RecordUpdate
//-----------------------------------------------------------------------------

// RecordUpdate is the partial field set written back to a located record. A
// nil Error clears any previously stored error fields. Fields outside this
// set are left untouched by the update.
type RecordUpdate struct {
	MessageID     string
	CheckoutID    string
	RecipientID   string
	Status        StatusValue
	FormattedTime string
	Error         *EventError
}
