package gateway

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Order references bind the paying user into the signed portion of the
// gateway exchange: "<user uuid>:<random uuid>". The notification signature
// covers the whole reference, so the user binding cannot be tampered with
// without invalidating the signature.

// NewOrderReference generates a fresh unique order reference for a user.
func NewOrderReference(userID uuid.UUID) string {
	return userID.String() + ":" + uuid.NewString()
}

// UserFromReference extracts the user id embedded in an order reference.
func UserFromReference(ref string) (uuid.UUID, error) {
	parts := strings.SplitN(ref, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return uuid.Nil, fmt.Errorf("malformed order reference")
	}
	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed order reference: %w", err)
	}
	return userID, nil
}
