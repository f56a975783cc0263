package wastatus

import (
	"context"
	"fmt"
	"sync"
)

// MockBackend is an in memory backend used for testing handlers and the
// server without a live store
type MockBackend struct {
	mutex   sync.Mutex
	records []*MessageLogRecord
	lastID  int

	lookupErr error
	updateErr error
	lookups   int
	updates   int
}

// NewMockBackend returns a new empty mock backend
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// AddRecord stores a copy of the passed in record, assigning it an identity
// if it has none, and returns that identity
func (b *MockBackend) AddRecord(record *MessageLogRecord) RecordID {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	saved := *record
	if saved.ID == NilRecordID {
		b.lastID++
		saved.ID = RecordID(fmt.Sprintf("doc-%d", b.lastID))
	}
	b.records = append(b.records, &saved)
	return saved.ID
}

// GetRecord returns a copy of the record with the passed in identity, nil if
// there is none
func (b *MockBackend) GetRecord(id RecordID) *MessageLogRecord {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, r := range b.records {
		if r.ID == id {
			saved := *r
			return &saved
		}
	}
	return nil
}

// SetLookupError makes all subsequent lookups fail with the passed in error
func (b *MockBackend) SetLookupError(err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.lookupErr = err
}

// SetUpdateError makes all subsequent updates fail with the passed in error
func (b *MockBackend) SetUpdateError(err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.updateErr = err
}

// Lookups returns how many lookups have been made against this backend
func (b *MockBackend) Lookups() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.lookups
}

// Updates returns how many updates have been applied to this backend
func (b *MockBackend) Updates() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.updates
}

// LookupRecord returns a copy of the first stored record whose messageId
// matches, insertion order, nil when there is no match
func (b *MockBackend) LookupRecord(ctx context.Context, messageID string) (*MessageLogRecord, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.lookups++
	if b.lookupErr != nil {
		return nil, b.lookupErr
	}

	for _, r := range b.records {
		if r.MessageID == messageID {
			saved := *r
			return &saved, nil
		}
	}
	return nil, nil
}

// UpdateRecord applies the passed in partial update to the record with the
// given identity
func (b *MockBackend) UpdateRecord(ctx context.Context, id RecordID, update *RecordUpdate) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.updates++
	if b.updateErr != nil {
		return b.updateErr
	}

	for _, r := range b.records {
		if r.ID == id {
			r.MessageID = update.MessageID
			r.CheckoutID = update.CheckoutID
			r.RecipientID = update.RecipientID
			r.Status = update.Status
			r.FormattedTime = update.FormattedTime
			if update.Error != nil {
				code := update.Error.Code
				message := update.Error.Message
				details := update.Error.Details
				r.ErrorCode = &code
				r.ErrorMessage = &message
				r.ErrorDetails = &details
			} else {
				r.ErrorCode = nil
				r.ErrorMessage = nil
				r.ErrorDetails = nil
			}
			return nil
		}
	}
	return fmt.Errorf("no record with id %s", id)
}

// Close is a noop on the mock backend
func (b *MockBackend) Close() error {
	return nil
}
