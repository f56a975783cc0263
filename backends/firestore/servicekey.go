package firestore

import (
	"encoding/json"

	"github.com/pkg/errors"
	validator "gopkg.in/go-playground/validator.v9"
)

var validate = validator.New()

// ServiceKey is the subset of a service account key we need to authenticate
// against the store
type ServiceKey struct {
	ProjectID   string `json:"project_id"   validate:"required"`
	ClientEmail string `json:"client_email" validate:"required"`
	PrivateKey  string `json:"private_key"  validate:"required"`
}

// ParseServiceKey decodes and validates the passed in service account JSON
func ParseServiceKey(raw string) (*ServiceKey, error) {
	if raw == "" {
		return nil, errors.New("no service key configured")
	}

	key := &ServiceKey{}
	if err := json.Unmarshal([]byte(raw), key); err != nil {
		return nil, errors.Wrap(err, "unable to parse service key")
	}
	if err := validate.Struct(key); err != nil {
		return nil, errors.Wrap(err, "invalid service key")
	}
	return key, nil
}
