package schemas

import "time"

// ErrorDTO is a struct that represents an error response
// Error is the custom error, see CustomError
type ErrorDTO struct {
	Error CustomError `json:"error"`
}

// RegisterRequest is a struct that represents a registration request
// Username is required and must be less than 20 characters
// Password is required and must be between 4 and 8 characters
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=20,username_validation"`
	Password string `json:"password" sanitize:"-" validate:"required,min=4,max=8"`
}

// LoginRequest is a struct that represents a login request
// Username and Password are required; no length rules are applied here so
// that a malformed attempt is indistinguishable from a wrong password
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" sanitize:"-" validate:"required"`
}

// MemberUpdateRequest is a struct that represents a profile update request
type MemberUpdateRequest struct {
	Introduction string `json:"introduction" validate:"max=512"`
	LookingFor   string `json:"lookingFor" validate:"max=256"`
	Interests    string `json:"interests" validate:"max=256"`
	City         string `json:"city" validate:"max=64"`
	Country      string `json:"country" validate:"max=64"`
}

// AuthResponse is returned by registration and login. PhotoURL is only set
// on login and only when the user has a main photo.
type AuthResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	KnownAs  string `json:"knownAs"`
	Token    string `json:"token"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// MemberProjection is the read-only view of a user joined with profile
// fields and the main photo. It never carries credential material.
type MemberProjection struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	KnownAs      string    `json:"knownAs"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Introduction string    `json:"introduction"`
	LookingFor   string    `json:"lookingFor"`
	Interests    string    `json:"interests"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActive   time.Time `json:"lastActive"`
	PhotoURL     string    `json:"photoUrl,omitempty"`
}

// PhotoDTO is a struct that represents a photo response
type PhotoDTO struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	IsMain bool   `json:"isMain"`
}

// LikedIDsDTO is a struct that represents the liked-identifiers response
type LikedIDsDTO struct {
	IDs []int64 `json:"ids"`
}

// PaginatedResponse wraps a record subset with its pagination metadata
type PaginatedResponse struct {
	Records    interface{} `json:"records"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination describes the slice of records returned by a listing
type Pagination struct {
	Offset  int `json:"offset"`
	Limit   int `json:"limit"`
	Records int `json:"records"`
}
