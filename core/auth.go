package core

import "time"

// Session represents an authenticated session on the local control API
type Session struct {
	ID        string    // Unique token identifier
	IssuedAt  time.Time // When the session was created
	ExpiresAt time.Time // When the access token expires
}
