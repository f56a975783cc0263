package whatsapp

import (
	"context"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/shoptext/wastatus"
	"github.com/shoptext/wastatus/utils"
)

// ErrMissingEntry is returned by ParseStatusEvent when a payload has no entry
// container at all, meaning it is not a webhook delivery we understand
var ErrMissingEntry = errors.New("payload has no entry")

// path to the status entry within a Cloud API webhook payload
var statusPath = []string{"entry", "[0]", "changes", "[0]", "value", "statuses", "[0]"}

// ParseStatusEvent extracts the delivery status event carried by the passed
// in payload. Payloads with an entry container but no status entry, such as
// inbound messages, return nil without error. All event fields are read
// permissively, absent optional fields stay zero valued.
func ParseStatusEvent(payload []byte) (*wastatus.StatusEvent, error) {
	_, dataType, _, err := jsonparser.Get(payload, "entry")
	if err != nil || dataType == jsonparser.Null {
		return nil, ErrMissingEntry
	}

	status, _, _, err := jsonparser.Get(payload, statusPath...)
	if err != nil {
		return nil, nil
	}

	event := &wastatus.StatusEvent{}
	event.MessageID, _ = jsonparser.GetString(status, "id")
	event.RecipientID, _ = jsonparser.GetString(status, "recipient_id")

	value, _ := jsonparser.GetString(status, "status")
	event.Status = wastatus.StatusValue(value)

	// timestamps arrive as strings of unix seconds, but take a bare number too
	ts, tsType, _, _ := jsonparser.Get(status, "timestamp")
	if tsType == jsonparser.String || tsType == jsonparser.Number {
		event.Timestamp = string(ts)
	}

	if errEntry, _, _, err := jsonparser.Get(status, "errors", "[0]"); err == nil {
		eventErr := &wastatus.EventError{}
		eventErr.Code, _ = jsonparser.GetInt(errEntry, "code")
		eventErr.Message, _ = jsonparser.GetString(errEntry, "message")
		eventErr.Details, _ = jsonparser.GetString(errEntry, "error_data", "details")
		event.Error = eventErr
	}

	return event, nil
}

//-----------------------------------------------------------------------------
// Reconciler
//-----------------------------------------------------------------------------

// Reconciler applies status events to the message log records the sending
// path stored earlier
type Reconciler struct {
	backend wastatus.Backend
	locks   *utils.KeyedMutex
}

// NewReconciler creates a new reconciler over the passed in backend
func NewReconciler(backend wastatus.Backend) *Reconciler {
	return &Reconciler{
		backend: backend,
		locks:   utils.NewKeyedMutex(64),
	}
}

// Reconcile processes one raw webhook payload, looking up the log record the
// event belongs to and merging the new status into it. Store and timestamp
// failures come back as errors, everything else is an outcome.
func (rc *Reconciler) Reconcile(ctx context.Context, payload []byte) (wastatus.Outcome, error) {
	event, err := ParseStatusEvent(payload)
	if err != nil {
		return wastatus.OutcomeMalformed, nil
	}
	if event == nil {
		return wastatus.OutcomeNoEvent, nil
	}

	log := logrus.WithFields(logrus.Fields{
		"comp":       "whatsapp",
		"message_id": event.MessageID,
		"status":     string(event.Status),
	})

	// events for the same message race between our lookup and update, hold a
	// per key lock so updates at least apply whole within this process
	rc.locks.Lock(event.MessageID)
	defer rc.locks.Unlock(event.MessageID)

	record, err := rc.backend.LookupRecord(ctx, event.MessageID)
	if err != nil {
		return "", errors.Wrap(err, "error looking up message log record")
	}
	if record == nil {
		// the sending path writes the record before the provider can report
		// on it, so a miss is worth seeing in the logs but not failing on
		log.Info("no message log record for status event")
		return wastatus.OutcomeNotFound, nil
	}

	formattedTime, err := utils.FormatClockTime(event.Timestamp)
	if err != nil {
		// never substitute a default time, surface the failure instead
		return "", errors.Wrapf(err, "error formatting timestamp for message %s", event.MessageID)
	}

	update := &wastatus.RecordUpdate{
		MessageID:     event.MessageID,
		CheckoutID:    record.CheckoutID, // immutable, carried forward verbatim
		RecipientID:   event.RecipientID,
		Status:        event.Status,
		FormattedTime: formattedTime,
		Error:         event.Error,
	}

	if err := rc.backend.UpdateRecord(ctx, record.ID, update); err != nil {
		return "", errors.Wrapf(err, "error updating message log record %s", record.ID)
	}

	log.WithField("checkout_id", record.CheckoutID).Info("message status updated")
	return wastatus.OutcomeProcessed, nil
}
