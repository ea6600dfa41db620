// Package schemas defines the data structures
package schemas

import (
	"time"
)

// User represents the durable security record for one member. PasswordHash
// and PasswordSalt are always written together; neither is ever serialized.
type User struct {
	ID           int64     `json:"id"`       // Unique identifier for the user.
	Username     string    `json:"username"` // Username of the user, unique case-insensitively.
	KnownAs      string    `json:"knownAs"`  // Display name of the user.
	PasswordHash []byte    `json:"-"`        // HMAC-SHA512 digest of the password.
	PasswordSalt []byte    `json:"-"`        // Per-user random salt, used as the HMAC key.
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Introduction string    `json:"introduction"`
	LookingFor   string    `json:"lookingFor"`
	Interests    string    `json:"interests"`
	CreatedAt    time.Time `json:"createdAt"`  // Timestamp when the user was created.
	LastActive   time.Time `json:"lastActive"` // Timestamp of the last successful login.
}

// Photo represents a photo owned by exactly one user. At most one photo per
// user carries IsMain, enforced by the write path rather than the database.
type Photo struct {
	ID       int64  `json:"id"`       // Unique identifier for the photo.
	UserID   int64  `json:"userId"`   // Identifier of the owning user.
	URL      string `json:"url"`      // Public URL of the stored object.
	PublicID string `json:"publicId"` // Object name in the storage backend.
	IsMain   bool   `json:"isMain"`   // Whether this is the user's main photo.
}

// Principal carries the identity claims reconstructed from a validated
// bearer token. Downstream handlers use it for ownership checks.
type Principal struct {
	UserID      int64
	DisplayName string
}
