package wastatus

// StatusValue is the delivery state reported for a message. The provider
// vocabulary is open-ended so values are stored as-is; these are the ones the
// Cloud API currently sends.
type StatusValue string

// Possible values for StatusValue
const (
	StatusSent      StatusValue = "sent"
	StatusDelivered StatusValue = "delivered"
	StatusRead      StatusValue = "read"
	StatusFailed    StatusValue = "failed"
)

//-----------------------------------------------------------------------------
// StatusEvent
//-----------------------------------------------------------------------------

// StatusEvent is a single delivery-state transition extracted from a webhook
// payload. Events only live for the duration of one request.
type StatusEvent struct {
	MessageID   string
	RecipientID string
	Status      StatusValue
	Timestamp   string // unix seconds, carried raw as the provider sent it
	Error       *EventError
}

// EventError is the failure detail an event may carry for failed sends
type EventError struct {
	Code    int64
	Message string
	Details string
}

//-----------------------------------------------------------------------------
// Outcome
//-----------------------------------------------------------------------------

// Outcome classifies how one webhook payload was handled
type Outcome string

// Possible values for Outcome
const (
	// OutcomeProcessed means a status event was applied to a stored record
	OutcomeProcessed Outcome = "processed"

	// OutcomeNoEvent means the payload was a webhook shape that carries no
	// status event, such as an inbound message
	OutcomeNoEvent Outcome = "no_event"

	// OutcomeNotFound means the event referenced a message we have no log
	// record for
	OutcomeNotFound Outcome = "not_found"

	// OutcomeMalformed means the payload had no entry container at all
	OutcomeMalformed Outcome = "malformed"
)
