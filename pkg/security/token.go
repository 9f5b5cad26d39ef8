package security

import "github.com/google/uuid"

// NewSessionToken returns a random (v4) UUID. The value is opaque to clients
func NewSessionToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}
