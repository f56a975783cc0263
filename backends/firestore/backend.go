package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/shoptext/wastatus"
)

// backend is a wastatus.Backend over a Cloud Firestore collection. The
// underlying client is safe for concurrent use, one backend instance is
// shared across all requests.
type backend struct {
	client     *firestore.Client
	collection string
	log        *logrus.Entry
}

// NewBackend creates a new Firestore backend from the passed in config. The
// service key is parsed and validated before any client is built, running
// without store credentials is not something we do.
func NewBackend(ctx context.Context, config *wastatus.Config) (wastatus.Backend, error) {
	key, err := ParseServiceKey(config.ServiceKey)
	if err != nil {
		return nil, err
	}

	projectID := config.FirebaseProjectID
	if projectID == "" {
		projectID = key.ProjectID
	}

	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsJSON([]byte(config.ServiceKey)))
	if err != nil {
		return nil, errors.Wrap(err, "unable to create firestore client")
	}

	return &backend{
		client:     client,
		collection: config.LogsCollection,
		log:        logrus.WithField("comp", "backend"),
	}, nil
}

// LookupRecord returns the log record whose messageId field equals the passed
// in id, nil when there is none. messageId is supposed to be unique among
// active records, if it isn't we flag it and carry on with the first match.
func (b *backend) LookupRecord(ctx context.Context, messageID string) (*wastatus.MessageLogRecord, error) {
	docs, err := b.client.Collection(b.collection).Where("messageId", "==", messageID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "error querying message log records")
	}

	if len(docs) == 0 {
		return nil, nil
	}
	if len(docs) > 1 {
		b.log.WithFields(logrus.Fields{"message_id": messageID, "count": len(docs)}).Warn("multiple message log records for messageId")
	}

	doc := docs[0]
	data := doc.Data()

	record := &wastatus.MessageLogRecord{ID: wastatus.RecordID(doc.Ref.ID)}
	record.MessageID, _ = data["messageId"].(string)
	record.CheckoutID, _ = data["checkoutId"].(string)
	record.RecipientID, _ = data["recipientId"].(string)
	record.FormattedTime, _ = data["formattedTime"].(string)

	if status, ok := data["status"].(string); ok {
		record.Status = wastatus.StatusValue(status)
	}
	if code, ok := data["errorCode"].(int64); ok {
		record.ErrorCode = &code
	}
	if message, ok := data["errorMessage"].(string); ok {
		record.ErrorMessage = &message
	}
	if details, ok := data["errorDetails"].(string); ok {
		record.ErrorDetails = &details
	}

	return record, nil
}

// UpdateRecord applies the passed in partial update to the record with the
// given identity. Error fields are written as explicit nulls when the update
// carries no error so stale failure detail never outlives a recovery.
func (b *backend) UpdateRecord(ctx context.Context, id wastatus.RecordID, update *wastatus.RecordUpdate) error {
	var errorCode, errorMessage, errorDetails interface{}
	if update.Error != nil {
		errorCode = update.Error.Code
		errorMessage = update.Error.Message
		errorDetails = update.Error.Details
	}

	_, err := b.client.Collection(b.collection).Doc(string(id)).Update(ctx, []firestore.Update{
		{Path: "checkoutId", Value: update.CheckoutID},
		{Path: "messageId", Value: update.MessageID},
		{Path: "recipientId", Value: update.RecipientID},
		{Path: "status", Value: string(update.Status)},
		{Path: "formattedTime", Value: update.FormattedTime},
		{Path: "errorCode", Value: errorCode},
		{Path: "errorMessage", Value: errorMessage},
		{Path: "errorDetails", Value: errorDetails},
	})
	if err != nil {
		return errors.Wrapf(err, "error updating message log record %s", id)
	}
	return nil
}

// Close releases our underlying client
func (b *backend) Close() error {
	return b.client.Close()
}
