package user

import "github.com/google/uuid"

// User is the chat domain's read-only view of an identity record. The
// internal id keys foreign references; the external id is the only identity
// callers ever see.
type User struct {
	ID         int64     `json:"-"`
	ExternalID uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
}
